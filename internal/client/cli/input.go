package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/bookwise/internal/client/client"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetFilters reads optional recommendation filters as "name=value" lines
// until an empty line. Known names are language, audience, type, content
// and level; anything else is an error.
func GetFilters(reader *bufio.Reader, w io.Writer) (client.Filters, error) {
	var f client.Filters
	fmt.Fprintln(w, "Filters as name=value (language, audience, type, content, level); empty line to finish")

	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return f, nil
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return f, fmt.Errorf("expected name=value, got %q", line)
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(name) {
		case "language":
			f.Language = value
		case "audience":
			f.TargetAudience = value
		case "type":
			f.BookType = value
		case "content":
			f.ContentType = value
		case "level":
			f.ReadingLevel = value
		default:
			return f, fmt.Errorf("unknown filter %q", name)
		}

		if err != nil {
			return f, nil
		}
	}
}
