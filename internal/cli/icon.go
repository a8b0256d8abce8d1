package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// iconCommand renders a standalone person marker, e.g. for a legend.
func (c *CLI) iconCommand() *cobra.Command {
	var (
		opts    pipeline.IconOptions
		gender  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Render a standalone person icon",
		Example: `  kintree icon --gender female --deceased -o female-deceased.svg
  kintree icon --size 32 --format png -o child.png --child`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Gender = family.ParseGender(gender)
			if !cmd.Flags().Changed("png-scale") {
				opts.PNGScale = c.Config.Render.PNGScale
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			data, cached, err := runner.Icon(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("icon-%s.%s", opts.Gender, opts.Format)
			}
			if err := writeFile(output, data); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			if output != "-" {
				printSuccess("Rendered %s icon", opts.Gender)
				printDetail("%d bytes · cached %v", len(data), cached)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.Size, "size", pipeline.DefaultIconSize, "marker diameter in pixels")
	cmd.Flags().StringVar(&gender, "gender", "other", "male, female or other")
	cmd.Flags().BoolVar(&opts.Child, "child", false, "draw the infant variant")
	cmd.Flags().BoolVar(&opts.Deceased, "deceased", false, "draw the deceased variant")
	cmd.Flags().BoolVar(&opts.Styled, "styled", true, "embed the default style sheet")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "svg", "svg or png")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default icon-<gender>.<format>); - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
