package commands

import (
	"strings"

	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// CommandLogger returns the commands module logger tagged with the command
// group name.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":     "command",
		"command_group": name,
	})
}
