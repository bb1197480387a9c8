// =============================================================================
// Invoice Reconciliation - Platform Collaborators: Logger
// =============================================================================
//
// Adapts zerolog to the small printf-style Logger interface the pipeline and
// parsers depend on, so the core never imports a logging library.
//
// =============================================================================

package platform

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// NewLogger builds a zerolog logger for the given level and format
// ("console" or "json") and wraps it in the shared Logger interface.
func NewLogger(level, format string) types.Logger {
	var out io.Writer = os.Stderr
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &zerologAdapter{zl: zl}
}

type zerologAdapter struct {
	zl zerolog.Logger
}

func (a *zerologAdapter) Debug(msg string, args ...interface{}) {
	a.zl.Debug().Msgf(msg, args...)
}

func (a *zerologAdapter) Info(msg string, args ...interface{}) {
	a.zl.Info().Msgf(msg, args...)
}

func (a *zerologAdapter) Warn(msg string, args ...interface{}) {
	a.zl.Warn().Msgf(msg, args...)
}

func (a *zerologAdapter) Error(msg string, args ...interface{}) {
	a.zl.Error().Msgf(msg, args...)
}
