package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weslpkg/pkg/buildinfo"
	"github.com/matzehuels/weslpkg/pkg/cache"
	"github.com/matzehuels/weslpkg/pkg/pipeline"
	"github.com/matzehuels/weslpkg/pkg/project"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "weslpkg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	project projectOpts
	json    bool
	noCache bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		project: projectOpts{dir: "."},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand it resolves the given module paths and extracts
// the bundle of every package found.
func (c *CLI) RootCommand() *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:   appName + " [flags] <module-path>...",
		Short: "weslpkg finds the WESL packages a shader imports and extracts their bundles",
		Long: `weslpkg maps WESL module paths such as random_wgsl::lib::pcg_2u_3f to the npm
packages that provide them and reads each package's weslBundle descriptor.

Examples:
  weslpkg random_wgsl::lib::pcg_2u_3f                 # Show bundles for one import
  weslpkg --json lygia__shader_utils::color::rgb2hsv  # Descriptors as JSON
  weslpkg -d ./app --find-root random_wgsl::lib       # Start from the project root`,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd, args, output)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	c.project.register(root)
	root.PersistentFlags().BoolVar(&c.json, "json", false, "write JSON to stdout")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the bundle cache")
	root.Flags().StringVarP(&output, "output", "o", "", "write descriptors as JSON to file")

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.sanitizeCommand())
	root.AddCommand(c.variantsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Project Options
// =============================================================================

// projectOpts holds the flags that locate the project and its configuration.
type projectOpts struct {
	dir      string   // starting directory
	findRoot bool     // walk up to package.json or wesl.toml
	virtual  []string // extra virtual library namespaces
	config   string   // explicit wesl.toml path
}

func (o *projectOpts) register(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVarP(&o.dir, "project-dir", "d", o.dir, "directory node_modules lookup starts from")
	flags.BoolVar(&o.findRoot, "find-root", false, "use the nearest ancestor with package.json or wesl.toml")
	flags.StringSliceVar(&o.virtual, "virtual", nil, "extra namespace supplied by the linker (repeatable)")
	flags.StringVar(&o.config, "config", "", "path to wesl.toml (default: <project-dir>/wesl.toml)")
}

// projectContext is the resolved project location and configuration.
type projectContext struct {
	Dir         string
	Config      *project.Info
	VirtualLibs []string
}

// Packages returns npm packages listed explicitly in wesl.toml.
func (p *projectContext) Packages() []string {
	if p.Config.Config.Dependencies.Auto {
		return nil
	}
	return p.Config.Config.Dependencies.Packages
}

// load canonicalizes the project directory and reads its configuration.
func (o *projectOpts) load() (*projectContext, error) {
	dir, err := project.Canonical(o.dir)
	if err != nil {
		return nil, err
	}
	if o.findRoot {
		if dir, err = project.FindRoot(dir); err != nil {
			return nil, err
		}
	}
	info, err := project.FindConfig(dir, o.config)
	if err != nil {
		return nil, err
	}

	virtual := append([]string{}, info.Config.VirtualLibs...)
	virtual = append(virtual, o.virtual...)
	return &projectContext{Dir: dir, Config: info, VirtualLibs: virtual}, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(p *projectContext) *pipeline.Runner {
	r := pipeline.NewRunner(c.newCache(), nil, nil, c.Logger)
	r.VirtualLibs = p.VirtualLibs
	return r
}

// newCache opens the bundle cache, or a null cache when caching is disabled
// or the directory is unusable.
func (c *CLI) newCache() cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("bundle cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("bundle cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/weslpkg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}
