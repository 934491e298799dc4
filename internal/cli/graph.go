package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/weslpkg/pkg/bundle"
	"github.com/matzehuels/weslpkg/pkg/deps"
	"github.com/matzehuels/weslpkg/pkg/errors"
	"github.com/matzehuels/weslpkg/pkg/pipeline"
	"github.com/matzehuels/weslpkg/pkg/render"
)

// graphCommand draws module paths and the packages they resolve to.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <module-path>...",
		Short: "Draw which package each module path resolves to",
		Long: `Draw the module path to package resolution as a Graphviz graph.

Examples:
  weslpkg graph random_wgsl::lib::pcg lygia__shader_utils::color::rgb2hsv
  weslpkg graph --format svg -o deps.svg --detailed random_wgsl::lib`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateGraphFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()

			proj, err := c.project.load()
			if err != nil {
				return err
			}
			runner := c.newRunner(proj)
			res := runner.Resolve(args, proj.Dir)
			if len(res) == 0 {
				return errors.New(errors.ErrCodeNotFound, "no module path resolved to a package under %s", proj.Dir)
			}

			opts := render.Options{Detailed: detailed, ProjectDir: proj.Dir}
			if detailed {
				opts.Bundles = make(map[string]*bundle.Descriptor)
				for _, pkg := range deps.Unique(res) {
					b, err := runner.ExtractBundle(ctx, pkg)
					if err != nil {
						c.Logger.Warn("bundle details unavailable", "package", pkg, "err", err)
						continue
					}
					opts.Bundles[pkg] = b
				}
			}

			data := []byte(render.ToDOT(res, opts))
			if format == pipeline.FormatSVG {
				if data, err = render.RenderSVG(ctx, string(data)); err != nil {
					return err
				}
			}

			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Graph complete")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label packages with bundle name, edition and module count")

	return cmd
}
