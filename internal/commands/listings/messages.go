package listingscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importListingsMessageType = "guide.listings.import"

// ImportListingsCommand imports every listing document under Directory.
type ImportListingsCommand struct {
	// Directory is the filesystem root holding listing Markdown files.
	Directory string `json:"directory"`
	// Pattern limits imported files; defaults to "*.md".
	Pattern string `json:"pattern,omitempty"`
	// Recursive walks sub-directories.
	Recursive bool `json:"recursive,omitempty"`
	// DryRun parses and maps documents without writing them.
	DryRun bool `json:"dry_run,omitempty"`
	// Publish marks documents without an explicit status as published.
	Publish bool `json:"publish,omitempty"`
}

// Type implements command.Message.
func (ImportListingsCommand) Type() string { return importListingsMessageType }

// Validate requires a directory and a well formed pattern.
func (cmd ImportListingsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("guide.listings.import.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := value.(string)
			if strings.ContainsAny(pattern, "\\") {
				return validation.NewError("guide.listings.import.pattern_invalid", "pattern must use forward slashes")
			}
			return nil
		})),
	)
}
