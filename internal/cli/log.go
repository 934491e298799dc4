// Package cli implements the weslpkg command-line interface.
//
// The root command resolves WESL module paths to the npm packages that
// provide them and prints each package's weslBundle descriptor. The CLI is
// built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - weslpkg <module-path>...: resolve and extract bundles (table, --json, or -o file)
//   - resolve: print the package files module paths resolve to
//   - variants: print the package specifiers probed for a module path
//   - sanitize: print the WESL identifier for an npm package name
//   - graph: draw the resolution as DOT or SVG
//   - browse: pick a module interactively and print its source
//   - cache: print the bundle cache location or clear it
//
// # Project
//
// All commands take --project-dir (-d) as the starting directory for
// node_modules lookup, --find-root to walk up to the nearest package.json or
// wesl.toml, and --config to point at a wesl.toml elsewhere. Extracted
// descriptors are cached under $XDG_CACHE_HOME/weslpkg unless --no-cache is
// given.
//
// # Logging
//
// The main package adds --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Extracted 2 packages, 5 modules (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
