package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/client/client"
	"github.com/dmitrijs2005/bookwise/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// API is the part of the Bookwise server the CLI uses.
type API interface {
	LoggedIn() bool
	Register(ctx context.Context, username, password string) (*client.User, error)
	Login(ctx context.Context, username, password string) (*client.Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*client.User, error)
	Filters(ctx context.Context) (*client.FilterCatalogue, error)
	Recommend(ctx context.Context, query string, count int, filters client.Filters) ([]client.Book, error)
	SaveBook(ctx context.Context, b client.Book) (*client.SavedBook, error)
	SavedBooks(ctx context.Context) ([]client.SavedBook, error)
	DeleteSavedBook(ctx context.Context, id string) error
	IsSaved(ctx context.Context, title, author string) (bool, string, error)
	Export(ctx context.Context) (*client.Export, error)
}

// Pinger reports server reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config   *config.Config
	api      API
	health   Pinger
	closeFn  func() error
	userName string
	reader   *bufio.Reader
	out      io.Writer

	// books from the last recommendation, numbered from 1 for "save N"
	lastBooks []client.Book

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {
	hc, err := client.NewHealthClient(c.HealthAddr)
	if err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerURL, &http.Client{Timeout: c.RequestTimeout})

	return &App{
		config:  c,
		api:     api,
		health:  hc,
		closeFn: hc.Close,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if a.closeFn != nil {
			_ = a.closeFn()
		}
	}()

	log.Println("Welcome to Bookwise CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.health.Ping(ctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
