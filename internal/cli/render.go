package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// viewFlags are the view and output flags shared by render and view.
// Unset flags fall back to the configuration.
type viewFlags struct {
	width, height, scale float64
	x, y                 float64
	styled               bool
	pngScale             float64
}

func (f *viewFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.width, "width", 0, "viewport width in pixels (default from config, 800)")
	fs.Float64Var(&f.height, "height", 0, "viewport height in pixels (default from config, 800)")
	fs.Float64Var(&f.scale, "scale", 0, "zoom factor (default 1)")
	fs.Float64Var(&f.x, "x", 0, "horizontal pan offset in pixels")
	fs.Float64Var(&f.y, "y", 0, "vertical pan offset in pixels")
	fs.BoolVar(&f.styled, "styled", true, "embed the default style sheet")
	fs.Float64Var(&f.pngScale, "png-scale", 0, "PNG resolution multiplier (default 2)")
}

// apply overrides opts with every flag the user set explicitly.
func (f *viewFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	set := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("width", &opts.Width, f.width)
	set("height", &opts.Height, f.height)
	set("scale", &opts.Scale, f.scale)
	set("x", &opts.OffsetX, f.x)
	set("y", &opts.OffsetY, f.y)
	set("png-scale", &opts.PNGScale, f.pngScale)
	if fs.Changed("styled") {
		opts.Styled = f.styled
	}
}

// renderCommand creates the render command: layout file in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      viewFlags
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a layout to SVG, PNG, PDF or a JSON scene",
		Long: `Render a precomputed radial layout.

The input is a layout document (use "-" for stdin). Each requested format is
written next to the input unless --output is given; with several formats,
--output is a base path. Results are cached by layout content and view
settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderDefaults()
			flags.apply(cmd.Flags(), &opts)
			if formats := parseFormats(formatsStr); formats != nil {
				opts.Formats = formats
			}
			opts.Refresh = refresh
			if err := errors.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", input))
	spin.Start()

	res, err := runner.Render(ctx, data, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()
	prog.done("Rendered "+input, "cached", res.CacheHit)

	toStdout := output == "-"
	if toStdout && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format")
	}

	if !toStdout {
		printSuccess("Rendered %s", input)
		printStats(res.Stats.Persons, res.Stats.Shapes, res.CacheHit)
	}
	for _, format := range opts.Formats {
		path := "-"
		if !toStdout {
			path = outputPath(output, stdinName(input), format, len(opts.Formats))
		}
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(res.Artifacts[format]))
		if !toStdout {
			printFile(path)
		}
	}
	if !toStdout && input != "-" {
		printNextStep("Explore interactively", fmt.Sprintf("%s view %s", appName, input))
	}
	return nil
}

// readInput reads a layout document from path, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// stdinName substitutes a file name for stdin input when deriving output
// paths.
func stdinName(input string) string {
	if input == "-" {
		return "kintree.json"
	}
	return input
}
