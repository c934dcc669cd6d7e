package guide

import (
	"context"
	"net/http"

	"github.com/uptrace/bun"

	listingscmd "github.com/saltaireguide/directory/internal/commands/listings"
	"github.com/saltaireguide/directory/internal/di"
	"github.com/saltaireguide/directory/internal/directory"
	"github.com/saltaireguide/directory/internal/fetcher"
	"github.com/saltaireguide/directory/internal/importer"
)

// Page is the render-ready view of one listing.
type Page = directory.Page

// ImportListingsCommand imports every listing document under a directory.
type ImportListingsCommand = listingscmd.ImportListingsCommand

// ImportResult reports what an import run created, updated or skipped.
type ImportResult = importer.Result

// ErrNotFound reports that no published listing exists at a path.
var ErrNotFound = fetcher.ErrNotFound

// IsNotFound reports whether err means the path has no published listing.
func IsNotFound(err error) bool { return fetcher.IsNotFound(err) }

// IsFetchError reports whether err is a content store failure.
func IsFetchError(err error) bool { return fetcher.IsFetchError(err) }

// Module is the top level guide runtime façade.
type Module struct {
	container *di.Container
	ownedDB   *bun.DB
}

// New constructs a module from cfg and optional DI overrides. Without
// di.WithBunDB the module serves from in-memory stores.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Open connects to the store in cfg.Storage and constructs the module on top
// of it. Close releases the connection.
func Open(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := di.OpenDatabase(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	module, err := New(cfg, append([]di.Option{di.WithBunDB(db)}, opts...)...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	module.ownedDB = db
	return module, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Page returns the page for a listing path.
func (m *Module) Page(ctx context.Context, path string) (*Page, error) {
	return m.container.DirectoryService().Page(fetcher.WithRequestMemo(ctx), path)
}

// Handler returns the public HTTP handler.
func (m *Module) Handler() http.Handler {
	return m.container.PublicAPI().Handler()
}

// ImportListings runs a listings import and returns its result.
func (m *Module) ImportListings(ctx context.Context, cmd ImportListingsCommand) (*ImportResult, error) {
	handler := m.container.ImportListingsHandler()
	err := handler.Execute(ctx, cmd)
	return handler.LastResult(), err
}

// Migrate applies the embedded migrations to the module's database.
func (m *Module) Migrate(ctx context.Context) ([]string, error) {
	db := m.container.BunDB()
	if db == nil {
		return nil, nil
	}
	return Migrate(ctx, db)
}

// Close releases the database opened by Open.
func (m *Module) Close() error {
	if m == nil || m.ownedDB == nil {
		return nil
	}
	return m.ownedDB.Close()
}
