package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// Level is the severity of a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a configured level name to a Level. Unknown names return
// LevelInfo and false.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "", "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	}
	return LevelInfo, false
}

// Options configures the console provider. Zero values write to stdout at
// DEBUG and above.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type provider struct {
	writer   io.Writer
	clock    func() time.Time
	minLevel Level
	mu       *sync.Mutex
}

// NewProvider returns a provider writing one key=value line per entry.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{
		writer:   opts.Writer,
		clock:    opts.TimeFunc,
		minLevel: LevelDebug,
		mu:       &sync.Mutex{},
	}
	if p.writer == nil {
		p.writer = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.minLevel = *opts.MinLevel
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{provider: p, fields: map[string]any{"logger": name}}
}

type consoleLogger struct {
	provider *provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *consoleLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }
func (l *consoleLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args...) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &consoleLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &consoleLogger{provider: l.provider, fields: maps.Clone(l.fields), ctx: ctx}
}

func (l *consoleLogger) log(level Level, msg string, args ...any) {
	if l.provider == nil || level < l.provider.minLevel {
		return
	}
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	maps.Copy(fields, logging.ContextFields(l.ctx))
	maps.Copy(fields, argsToFields(args))

	entry := formatEntry(l.provider.clock().UTC(), level.String(), msg, fields)

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	// best effort
	_, _ = io.WriteString(l.provider.writer, entry+"\n")
}

// argsToFields pairs variadic args as key, value. A dangling value or a
// non-string key becomes a positional field_N entry.
func argsToFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			fields[fmt.Sprintf("field_%d", i/2)] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = fmt.Sprintf("field_%d", i/2)
		}
		fields[key] = args[i+1]
	}
	return fields
}

func formatEntry(ts time.Time, level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quoteIfNeeded(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case error:
		return quoteIfNeeded(v.Error())
	case fmt.Stringer:
		return quoteIfNeeded(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quoteIfNeeded(fmt.Sprint(v))
	}
}

func quoteIfNeeded(value string) string {
	if value == "" {
		return `""`
	}
	if strings.IndexFunc(value, func(r rune) bool { return r <= 0x20 || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(value)
	}
	return value
}
