package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/recovery"
	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	session     *session.State
	db          *sql.DB
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	// structured diagnostics go to stderr; the REPL talks via the stdlib log
	slogger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	store, db, err := buildStore(ctx, c)
	if err != nil {
		log.Printf("error initializing credential storage: %s", err.Error())
		return nil, err
	}

	sess := session.New(store, slogger)

	apiClient, err := client.NewHTTPClient(c.BaseURL, sess, c.RequestTimeout, slogger)
	if err != nil {
		return nil, err
	}

	flow := recovery.NewFlow()
	as := services.NewAuthService(apiClient, sess, flow, store, slogger)

	return &App{
		config:      c,
		authService: as,
		session:     sess,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// buildStore picks the credential store implementation from config. The
// returned *sql.DB is non-nil only for the sqlite kind and must be closed
// by the caller.
func buildStore(ctx context.Context, c *config.Config) (credentials.Store, *sql.DB, error) {
	switch c.StorageKind {
	case config.StorageSQLite:
		db, err := client.InitDatabase(ctx, c.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return credentials.NewSQLiteStore(db), db, nil
	case config.StorageFile:
		store, err := credentials.NewFileStore(c.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.StorageMemory:
		return credentials.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage kind %q", c.StorageKind)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	_ = a.authService.Close(ctx)
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}
