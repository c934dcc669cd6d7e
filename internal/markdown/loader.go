package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/saltaireguide/directory/pkg/interfaces"
)

// LoaderConfig configures listing file discovery.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader reads listing documents from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single listing document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.ListingDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}

	doc, err := BuildDocument(name, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory parses every matching file under dir, sorted by file path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.ListingDocument, error) {
	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}

	var docs []*interfaces.ListingDocument
	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matches(current) {
			return nil
		}
		doc, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

func (l *Loader) matches(name string) bool {
	pattern := strings.ReplaceAll(l.pattern, "**/", "")
	target := path.Base(name)
	if strings.Contains(pattern, "/") {
		target = name
	}
	ok, err := path.Match(pattern, target)
	return err == nil && ok
}
