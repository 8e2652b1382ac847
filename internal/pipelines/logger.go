package pipelines

import "github.com/flowloom/pipelex/internal/obslog"

var pkgLogger = obslog.Discard()

// SetLogger installs the logger used to observe PipelinesConfig.Expand
// calls. Callers that want visibility into expansion (key, error) should
// call this once during startup; the default discards every entry.
func SetLogger(l *obslog.Logger) {
	if l == nil {
		l = obslog.Discard()
	}
	pkgLogger = l
}
