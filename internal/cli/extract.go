package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weslpkg/pkg/buildinfo"
	"github.com/matzehuels/weslpkg/pkg/errors"
	pkgio "github.com/matzehuels/weslpkg/pkg/io"
	"github.com/matzehuels/weslpkg/pkg/pipeline"
)

// runExtract resolves module paths, extracts every bundle found, and prints
// the descriptors as a table or JSON. Finding no bundle at all is an error.
func (c *CLI) runExtract(cmd *cobra.Command, args []string, output string) error {
	ctx := cmd.Context()

	proj, err := c.project.load()
	if err != nil {
		return err
	}
	packages := proj.Packages()
	if len(args) == 0 && len(packages) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no module paths given and wesl.toml lists no dependencies")
	}

	c.Logger.Debug("extracting bundles",
		"version", buildinfo.String(),
		"project", proj.Dir,
		"config", proj.Config.File,
		"module_paths", args,
		"packages", packages,
		"virtual", proj.VirtualLibs)

	prog := newProgress(c.Logger)
	var result *pipeline.Result
	err = c.withProgress(ctx, proj.Dir, func() (err error) {
		result, err = c.newRunner(proj).Run(ctx, pipeline.Options{
			ModulePaths: args,
			ProjectDir:  proj.Dir,
			Packages:    packages,
		})
		return err
	})
	if err != nil {
		return err
	}
	if len(result.Bundles) == 0 {
		return errors.New(errors.ErrCodeNotFound, "no WESL packages found for %d module paths under %s", len(args), proj.Dir)
	}
	prog.done(fmt.Sprintf("Extracted %s", result))

	if output != "" {
		if err := pkgio.ExportJSON(result.Bundles, output); err != nil {
			return err
		}
		if !c.json {
			printSuccess("Wrote %d bundles", len(result.Bundles))
			printFile(output)
		}
	}
	if c.json {
		return pkgio.WriteJSON(result.Bundles, cmd.OutOrStdout())
	}
	if output == "" {
		printBundles(cmd.OutOrStdout(), result.Bundles, result.Packages, proj.Dir)
		if result.Stats.Unresolved > 0 {
			printWarning("%d module paths did not resolve to a package", result.Stats.Unresolved)
		}
	}
	return nil
}
