package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	clerrors "github.com/YuminosukeSato/classigo/pkg/errors"
)

// warnLogger is the zerolog logger used for library warnings. Warnings carry
// structured payloads (ConvergenceWarning, UndefinedMetricWarning) that
// implement zerolog.LogObjectMarshaler.
var warnLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// EnableStructuredWarnings routes library warnings through zerolog so that
// warning types are emitted as structured objects instead of plain text.
func EnableStructuredWarnings() {
	clerrors.SetZerologWarnFunc(func(warning error) {
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			warnLogger.Warn().Object("warning", obj).Msg(warning.Error())
			return
		}
		warnLogger.Warn().Err(warning).Msg("warning")
	})
}

// SetWarnOutput redirects structured warnings, mainly for tests.
func SetWarnOutput(w io.Writer) {
	warnLogger = zerolog.New(w).With().Timestamp().Logger()
}
