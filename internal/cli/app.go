// Package cli wires configuration, logging, persistence, and the bridge
// into an App shared by all commands.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/cli/styles"
	"github.com/veilbrowser/veil/internal/config"
	"github.com/veilbrowser/veil/internal/events"
	"github.com/veilbrowser/veil/internal/ledger"
	"github.com/veilbrowser/veil/internal/logging"
	"github.com/veilbrowser/veil/internal/persistence/sqlite"
	"github.com/veilbrowser/veil/internal/store"
)

// App holds the dependencies shared by all commands.
type App struct {
	Config  *config.Manager
	Theme   *styles.Theme
	Client  *bridge.Client
	Queue   *ledger.Queue
	Events  *events.Dispatcher
	Offline bool

	Wallet    *store.WalletStore
	Bookmarks *store.BookmarksStore
	History   *store.HistoryStore
	Tabs      *store.TabsStore
	Notes     *store.NotesStore
	Settings  *store.SettingsStore
	Downloads *store.DownloadsStore

	db        *sql.DB
	transport bridge.Transport
	ctx       context.Context
}

// NewApp creates the application: config, logger, database, bridge
// connection, stores, and the event dispatcher. A missing host process is
// not fatal; bridge-backed operations then surface "API not available".
func NewApp() (*App, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	app := &App{
		Config: manager,
		Theme:  styles.DefaultTheme(),
		db:     db,
		ctx:    ctx,
	}

	var transport bridge.Transport
	wsTransport, dialErr := bridge.DialHost(ctx, cfg.Host.Endpoint, logger)
	if dialErr != nil {
		logger.Warn().Err(dialErr).Str("endpoint", cfg.Host.Endpoint).Msg("host not reachable, running offline")
		transport = offlineTransport{}
		app.Offline = true
	} else {
		transport = wsTransport
	}
	app.transport = transport
	app.Client = bridge.New(transport, logger)

	app.Queue = ledger.NewQueue(app.Client, logger)
	app.Wallet = store.NewWalletStore(app.Client, cfg.Wallet, logger)
	app.Bookmarks = store.NewBookmarksStore(app.Client, app.Queue, logger)
	app.History = store.NewHistoryStore(app.Client, sqlite.NewHistoryCacheRepository(db), logger)
	app.Tabs = store.NewTabsStore(app.Client, cfg.General.NewTabURL, logger)
	app.Notes = store.NewNotesStore(app.Client, sqlite.NewNoteRepository(db), cfg.Wallet, logger)
	app.Settings = store.NewSettingsStore(app.Client, manager, logger)
	app.Downloads = store.NewDownloadsStore()

	app.Events = events.New(app.Client, app.Tabs, app.History, app.Downloads, logger)

	return app, nil
}

// Ctx returns the context carrying the app logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close tears down the event layer, the ledger queue, the bridge
// connection, and the database.
func (a *App) Close() error {
	if a.Events != nil {
		a.Events.Teardown()
	}
	if a.Queue != nil {
		a.Queue.Close()
	}
	if a.transport != nil {
		_ = a.transport.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// offlineTransport fails every call without a connection attempt.
type offlineTransport struct{}

func (offlineTransport) Call(context.Context, string, any) (json.RawMessage, error) {
	return nil, bridge.ErrTransportClosed
}
func (offlineTransport) Subscribe(bridge.EventHandler) {}
func (offlineTransport) RemoveAllListeners()           {}
func (offlineTransport) Close() error                  { return nil }
