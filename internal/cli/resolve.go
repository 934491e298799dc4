package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weslpkg/pkg/deps"
	"github.com/matzehuels/weslpkg/pkg/errors"
	pkgio "github.com/matzehuels/weslpkg/pkg/io"
	"github.com/matzehuels/weslpkg/pkg/modpath"
)

// resolveCommand prints the package files that module paths resolve to,
// without extracting anything.
func (c *CLI) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <module-path>...",
		Short: "Print the package files module paths resolve to",
		Long: `Print the unique package files the given module paths resolve to, one per line.

Module paths that name built-ins (single segments, constants::, virtual
libraries) or that match no installed package are left out.

Examples:
  weslpkg resolve random_wgsl::lib::pcg_2u_3f
  weslpkg resolve --json lygia__shader_utils::color::rgb2hsv random_wgsl::lib`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := c.project.load()
			if err != nil {
				return err
			}

			res := c.newRunner(proj).Resolve(args, proj.Dir)
			if c.json {
				return pkgio.WriteResolutionsJSON(res, cmd.OutOrStdout())
			}
			for _, pkg := range deps.Unique(res) {
				fmt.Fprintln(cmd.OutOrStdout(), pkg)
			}
			if len(res) == 0 {
				c.Logger.Warn("no module path resolved to a package", "project", proj.Dir)
			}
			return nil
		},
	}
}

// sanitizeCommand prints the WESL identifier for npm package names.
func (c *CLI) sanitizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <npm-name>...",
		Short: "Print the WESL identifier for npm package names",
		Long: `Print the identifier a WESL import uses for each npm package name.

Examples:
  weslpkg sanitize @lygia/shader-utils   # lygia__shader_utils
  weslpkg sanitize random-wgsl           # random_wgsl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := errors.ValidateNpmPackageName(name); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), modpath.SanitizePackageName(name))
			}
			return nil
		},
	}
}

// variantsCommand prints the package specifiers tried for a module path,
// in probe order.
func (c *CLI) variantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants <module-path>",
		Short: "Print the package specifiers probed for a module path",
		Long: `Print every package specifier resolution would try for a module path, in order:
export subpaths from longest to shortest, each in underscore then hyphen spelling.

Example:
  weslpkg variants foo__bar_baz::color::rgb
    @foo/bar_baz/color/rgb
    @foo/bar-baz/color/rgb
    @foo/bar_baz/color
    ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := modpath.Parse(args[0])
			if err != nil {
				return err
			}
			proj, err := c.project.load()
			if err != nil {
				return err
			}
			if !p.IsPackageRef(proj.VirtualLibs...) {
				c.Logger.Warn("module path names a built-in and is never resolved", "path", args[0])
			}
			for _, sub := range modpath.ExportSubpaths(p) {
				for _, v := range modpath.NameVariations(sub) {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
			}
			return nil
		},
	}
}
