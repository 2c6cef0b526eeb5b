package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/insurekit/claimfreq/pkg/errors"
)

// SetupLogger installs the default slog logger for the library, writing JSON
// records to stdout.
func SetupLogger(loglevel string) {
	SetupLoggerTo(os.Stdout, loglevel)
}

// SetupLoggerTo installs the default slog logger writing to w. Attribute keys
// are renamed to the CloudLogging convention and errors carrying stack traces
// get a stacktrace attribute via ErrFmtHandler.
func SetupLoggerTo(w io.Writer, loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ForComponent returns the default logger with the ml.component attribute
// preset, so every record from one pipeline stage is attributable to it.
func ForComponent(name string) *slog.Logger {
	return slog.Default().With(slog.String(ComponentKey, name))
}

// ParseLevel converts a level name to a slog.Level. Unknown names are a
// ValueError; use this for externally supplied level strings such as CLI
// flags.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.NewValueError("log.ParseLevel", "unknown log level "+level)
}

// ToLogLevel converts a level name to a slog.Level. Unknown names panic; use
// ParseLevel for input that is not under the program's control.
func ToLogLevel(level string) slog.Level {
	lv, err := ParseLevel(level)
	if err != nil {
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
	return lv
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
