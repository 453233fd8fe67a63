package grove

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the dispatcher's logger. Output is discarded unless the
// config enables debug mode or names a level.
func newLogger(cfg Config) *log.Logger {
	if !cfg.Debug && cfg.LogLevel == "" {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	if cfg.LogLevel != "" {
		if l, err := log.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "grove",
		Level:           level,
		ReportTimestamp: true,
	})
}

// viewName returns a readable label for log lines.
func viewName(v View) any {
	if v == nil {
		return "<nil>"
	}
	if n, ok := v.(*Node); ok && n.Name != "" {
		return n.Name
	}
	return v.UID()
}

// debugCheckTraceDepth warns when a trace is deeper than the configured
// threshold.
func (d *Dispatcher) debugCheckTraceDepth(evt *Event) {
	if d.cfg.MaxTraceDepth > 0 && evt.Depth > d.cfg.MaxTraceDepth {
		d.logger.Warn("trace depth exceeds threshold",
			"depth", evt.Depth, "max", d.cfg.MaxTraceDepth, "target", viewName(evt.Target))
	}
}
