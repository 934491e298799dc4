package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/weslpkg/pkg/observability"
)

// Spinner reports extraction progress on stderr. It implements
// observability.PipelineHooks, so while installed it names the package the
// runner is reading. Nothing is drawn unless stderr is a terminal.
type Spinner struct {
	out     io.Writer
	enabled bool
	dir     string // project directory, for package labels outside node_modules

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	started bool
	once    sync.Once

	mu      sync.Mutex
	message string
	total   int // packages to extract, once resolution finished
	current int
	width   int // widest line drawn so far
}

var _ observability.PipelineHooks = (*Spinner)(nil)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// newSpinner creates a spinner that stops drawing when ctx is cancelled.
func newSpinner(ctx context.Context, dir string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	fd := os.Stderr.Fd()
	return &Spinner{
		out:     os.Stderr,
		enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		dir:     dir,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: "Resolving module paths...",
	}
}

// Message returns the line currently shown.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Spinner) setMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

func (s *Spinner) OnResolveComplete(_ context.Context, modulePaths, packages int, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total, s.current = packages, 0
	s.message = fmt.Sprintf("Resolved %d module paths to %d packages", modulePaths, packages)
}

func (s *Spinner) OnExtractStart(_ context.Context, packagePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	label := packageLabel(packagePath, s.dir)
	if s.total > 0 {
		s.message = fmt.Sprintf("Extracting %s (%d/%d)...", label, s.current, s.total)
	} else {
		s.message = fmt.Sprintf("Extracting %s...", label)
	}
}

func (s *Spinner) OnExtractComplete(context.Context, string, int, time.Duration, error) {}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Stop ends the animation and clears the line. It may be called more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		close(s.done)
		if s.started {
			<-s.stopped
		}
		s.clearLine()
	})
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	n := utf8.RuneCountInString(s.message) + 2
	pad := ""
	if n < s.width {
		pad = strings.Repeat(" ", s.width-n)
	} else {
		s.width = n
	}
	fmt.Fprintf(s.out, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), pad)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled && s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// packageLabel names the npm package a bundle file belongs to, falling back
// to the path relative to dir.
func packageLabel(path, dir string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i := len(parts) - 3; i >= 0; i-- {
		if parts[i] != "node_modules" {
			continue
		}
		name := parts[i+1]
		if strings.HasPrefix(name, "@") {
			name += "/" + parts[i+2]
		}
		return name
	}
	return displayPath(path, dir)
}

// withProgress runs fn with a spinner installed as the pipeline hooks.
// In debug mode the log lines already show progress and no spinner is used.
func (c *CLI) withProgress(ctx context.Context, dir string, fn func() error) error {
	if c.Logger.GetLevel() <= log.DebugLevel {
		return fn()
	}
	s := newSpinner(ctx, dir)
	prev := observability.Pipeline()
	observability.SetPipelineHooks(s)
	defer observability.SetPipelineHooks(prev)

	s.Start()
	defer s.Stop()
	return fn()
}
