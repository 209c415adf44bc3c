package booklist

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/bookwise/internal/server/models"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Result is the outcome of Parse: either Valid or Invalid.
type Result interface {
	isResult()
}

// Valid carries a fully conforming book list (possibly empty).
type Valid struct {
	Books []models.Book
}

// Invalid explains why the model output was rejected. Reason never quotes
// the raw payload.
type Invalid struct {
	Reason string
}

func (Valid) isResult()   {}
func (Invalid) isResult() {}

// Parse interprets raw model output strictly as a JSON array of books.
// A single surrounding markdown code fence is removed first; nothing else
// is repaired.
func Parse(raw string) Result {
	text := stripFence(raw)
	if text == "" {
		return Invalid{Reason: "empty output"}
	}

	inst, err := jschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return Invalid{Reason: "not json"}
	}

	sch, err := compiledSchema()
	if err != nil {
		return Invalid{Reason: "schema unavailable"}
	}
	if err := sch.Validate(inst); err != nil {
		return Invalid{Reason: violation(err)}
	}

	books := []models.Book{}
	if err := json.Unmarshal([]byte(text), &books); err != nil {
		return Invalid{Reason: "decode: " + err.Error()}
	}
	return Valid{Books: books}
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) < 6 || !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return s
	}
	body := strings.TrimSuffix(s[3:], "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && isInfoString(body[:nl]) {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}

// isInfoString matches the language tag after an opening fence ("json", "").
func isInfoString(s string) bool {
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func violation(err error) string {
	var ve *jschema.ValidationError
	if !errors.As(err, &ve) {
		return "schema violation"
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	loc := "/" + strings.Join(leaf.InstanceLocation, "/")
	return "schema violation at " + loc
}
