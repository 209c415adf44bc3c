package cli

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookwise/internal/client/client"
	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/filex"
	"github.com/dmitrijs2005/bookwise/internal/netx"
)

const exportDir = "exports"

// Test seams for the export download.
var (
	downloadFn  = netx.DownloadPresigned
	writeFileFn = filex.WriteInSubdir
)

var (
	errNotLoggedIn = errors.New("not logged in, use 'login' first")
	errUsage       = errors.New("invalid arguments, see 'help'")
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	s = strings.TrimSpace(s)
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

func (a *App) credentials() (string, string, error) {
	userName, err := GetSimpleText(a.reader, "-Enter username", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)
	return userName, string(password), nil
}

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}

	u, err := a.api.Register(ctx, userName, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s, you can log in now\n", u.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return err
	}
	a.userName = s.User.Username
	fmt.Fprintf(a.out, "Logged in, session valid until %s\n", s.ExpiresAt.Local().Format("15:04"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.userName = ""
	a.lastBooks = nil
	if err != nil && !errors.Is(err, client.ErrUnavailable) {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %s, since %s)\n", u.Username, u.ID, u.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *App) Filters(ctx context.Context) error {
	f, err := a.api.Filters(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "language: %s\n", strings.Join(f.Languages, ", "))
	fmt.Fprintf(a.out, "audience: %s\n", strings.Join(f.TargetAudiences, ", "))
	fmt.Fprintf(a.out, "type:     %s\n", strings.Join(f.BookTypes, ", "))
	fmt.Fprintf(a.out, "content:  %s\n", strings.Join(f.ContentTypes, ", "))
	fmt.Fprintf(a.out, "level:    %s\n", strings.Join(f.ReadingLevels, ", "))
	return nil
}

func (a *App) Recommend(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	query, err := GetSimpleText(a.reader, "-What would you like to read?", a.out)
	if err != nil {
		return err
	}

	countText, err := GetSimpleText(a.reader, "-How many books? (empty for default)", a.out)
	if err != nil {
		return err
	}
	count := 0
	if countText != "" {
		if count, err = strconv.Atoi(countText); err != nil {
			return errUsage
		}
	}

	filters, err := GetFilters(a.reader, a.out)
	if err != nil {
		return err
	}

	books, err := a.api.Recommend(ctx, query, count, filters)
	if err != nil {
		return err
	}

	a.lastBooks = books
	for i, b := range books {
		mark := ""
		if saved, _, err := a.api.IsSaved(ctx, b.Title, b.Author); err == nil && saved {
			mark = " (saved)"
		}
		fmt.Fprintf(a.out, "%2d. %s by %s [%s]%s\n    %s\n", i+1, b.Title, b.Author, b.Genre, mark, b.ShortDescription)
	}
	if len(books) > 0 {
		fmt.Fprintln(a.out, "Use 'save N' to keep a book")
	}
	return nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.lastBooks) {
		return errUsage
	}

	sb, err := a.api.SaveBook(ctx, a.lastBooks[n-1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %q (id %s)\n", sb.Title, sb.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	books, err := a.api.SavedBooks(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Fprintln(a.out, "No saved books")
		return nil
	}
	for _, b := range books {
		fmt.Fprintf(a.out, "%s  %s by %s\n", b.ID, b.Title, b.Author)
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return errUsage
	}
	if err := a.api.DeleteSavedBook(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) Export(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	e, err := a.api.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\nDownload: %s\n", e.Key, e.URL)

	data, err := downloadFn(ctx, nil, e.URL)
	if err != nil {
		fmt.Fprintf(a.out, "Local copy skipped: %v\n", err)
		return nil
	}
	p, err := writeFileFn(exportDir, path.Base(e.Key), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved local copy to %s\n", p)
	return nil
}
