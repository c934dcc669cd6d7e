package listingscmd

import (
	"context"
	"io/fs"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/saltaireguide/directory/internal/commands"
	"github.com/saltaireguide/directory/internal/importer"
	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/internal/markdown"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

var _ command.Commander[ImportListingsCommand] = (*ImportListingsHandler)(nil)

// FS opens the directory named by a command. Tests swap it for an in-memory
// filesystem.
type FS func(dir string) fs.FS

// ImportListingsHandler runs listing imports through the shared command
// handler.
type ImportListingsHandler struct {
	inner *commands.Handler[ImportListingsCommand]
	last  *importer.Result
}

func NewImportListingsHandler(imp *importer.Importer, logger interfaces.Logger, open FS, opts ...commands.HandlerOption[ImportListingsCommand]) *ImportListingsHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	if open == nil {
		open = os.DirFS
	}
	h := &ImportListingsHandler{}

	exec := func(ctx context.Context, msg ImportListingsCommand) error {
		loader := markdown.NewLoader(open(msg.Directory), markdown.LoaderConfig{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		docs, err := loader.LoadDirectory(ctx, ".")
		if err != nil {
			return err
		}
		result, err := imp.ImportDocuments(ctx, docs, importer.Options{
			DryRun:  msg.DryRun,
			Publish: msg.Publish,
		})
		h.last = result
		if result != nil {
			logging.WithFields(logger, map[string]any{
				"directory":     msg.Directory,
				"documents":     len(docs),
				"created_count": len(result.Created),
				"updated_count": len(result.Updated),
				"skipped_count": len(result.Skipped),
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("listings.import.completed")
		}
		return err
	}

	handlerOpts := append([]commands.HandlerOption[ImportListingsCommand]{
		commands.WithLogger[ImportListingsCommand](logger),
	}, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[ImportListingsCommand].
func (h *ImportListingsHandler) Execute(ctx context.Context, msg ImportListingsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastResult returns the result of the most recent execution, if any.
func (h *ImportListingsHandler) LastResult() *importer.Result {
	return h.last
}
