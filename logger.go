package cogwheel

import (
	"log/slog"

	"github.com/gogpu/cogwheel/internal/logging"
)

// SetLogger configures the logger for cogwheel and all its sub-packages.
// By default cogwheel produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used by cogwheel:
//   - [slog.LevelDebug]: expansion and emission statistics
//   - [slog.LevelWarn]: sink failures
//   - [slog.LevelError]: a grammar that did not reach a fixpoint
//
// Example:
//
//	cogwheel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by cogwheel.
func Logger() *slog.Logger {
	return logging.Logger()
}
