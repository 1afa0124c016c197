package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/bills"
	"github.com/dmitrijs2005/billed/internal/client/config"
	"github.com/dmitrijs2005/billed/internal/client/navigator"
	"github.com/dmitrijs2005/billed/internal/client/newbill"
	"github.com/dmitrijs2005/billed/internal/client/session"
	"github.com/dmitrijs2005/billed/internal/client/store"
	"github.com/dmitrijs2005/billed/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// storeClient is everything the CLI needs from the store connection.
type storeClient interface {
	store.Store
	store.Authenticator
	SetToken(token string)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	store  storeClient
	health pinger
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	session *session.Session
	bills   *bills.Controller
	newBill *newbill.Controller
	views   []bills.View

	page    navigator.Page
	pending bool

	modeMu sync.Mutex
	mode   Mode
}

// NewApp builds the client from c. A session saved by a previous run is
// restored when present.
func NewApp(c *config.Config, logger logging.Logger) (*App, func() error, error) {
	health, err := store.NewHealthChecker(c.HealthEndpointAddr)
	if err != nil {
		return nil, nil, err
	}

	a := &App{
		config: c,
		store:  store.NewRESTClient(c.ServerEndpointAddr, c.RequestTimeout),
		health: health,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		page:   navigator.PageLogin,
	}

	s, err := session.Load(c.SessionFile)
	switch {
	case err == nil && s.IsEmployee():
		a.startSession(*s)
	case err == nil:
		logger.Warn(context.Background(), "ignoring saved session of a non-employee account", "type", s.Type)
	case !errors.Is(err, session.ErrNoSession):
		logger.Warn(context.Background(), "could not read saved session", "error", err)
	}

	return a, health.Close, nil
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "store connectivity changed", "mode", mode)
	}
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to Billed (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if a.isLoggedIn() {
		a.Navigate(navigator.PageBills)
	} else {
		printlnFn("Not logged in: use 'login' or 'register'")
	}
	_ = a.Render(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// startSession builds the page controllers for s.
func (a *App) startSession(s session.Session) {
	a.session = &s
	a.store.SetToken(s.Token)

	logger := a.logger.With("email", s.Email)
	a.bills = bills.NewController(a.store, &terminalModal{w: a.out}, s, logger)
	a.newBill = newbill.NewController(a.store, a, &terminalAlerter{w: a.out}, s, logger)
}

func (a *App) endSession() {
	a.session = nil
	a.bills = nil
	a.newBill = nil
	a.views = nil
	a.store.SetToken("")
}

// StartOnlineStatusWatcher probes the store every interval and flips the
// prompt between online and offline. A non-positive interval falls back to
// config.DefaultOnlineCheckInterval.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultOnlineCheckInterval
	}
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.health.Ping(ctx); err != nil {
		a.logger.Debug(ctx, "store ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
