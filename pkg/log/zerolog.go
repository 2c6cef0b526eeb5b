package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/insurekit/claimfreq/pkg/errors"
)

// InstallZerologWarnSink routes library warnings through a zerolog logger
// writing to w. Warning types implementing zerolog.LogObjectMarshaler (such
// as errors.UndefinedMetricWarning) are emitted as structured objects,
// anything else as a plain message.
func InstallZerologWarnSink(w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Str("component", "claimfreq").Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("warning")
			return
		}
		ev.Err(warning).Msg("warning")
	})
	return logger
}
