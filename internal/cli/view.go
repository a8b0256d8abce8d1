package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/io"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/radial"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

const (
	panStep    = 40.0 // pixels per arrow key
	zoomFactor = 1.25
	minScale   = 0.05
	maxScale   = 50
)

var (
	viewKeyStyle   = lipgloss.NewStyle().Foreground(colorBlue)
	viewLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(8)
	viewBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// viewCommand creates the interactive viewer. Each pan or zoom updates the
// scene transform and rewrites the SVG, so an auto-reloading image viewer
// pointed at the output follows along.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags  viewFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "view [layout.json]",
		Short: "Pan and zoom a layout interactively, writing SVG as you go",
		Long: `Open a layout in an interactive viewer.

Arrow keys (or h/j/k/l) pan, +/- zoom, 0 resets the view and q quits. The
current scene is rewritten to the output SVG after every change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderDefaults()
			flags.apply(cmd.Flags(), &opts)
			if output == "" {
				output = basePath("", args[0]) + ".view.svg"
			}

			l, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			var rOpts []radial.Option
			if opts.Styled {
				rOpts = append(rOpts, radial.WithStyleSheet(radial.DefaultStyleSheet))
			}
			r, err := radial.New(opts.Width, opts.Height, rOpts...)
			if err != nil {
				return err
			}
			m, err := newViewModel(r, l, output, opts.Scale, geom.V(opts.OffsetX, opts.OffsetY))
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if vm, ok := final.(viewModel); ok && vm.err != nil {
				return vm.err
			}
			printSuccess("Last view written to %s", output)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG file to keep updated (default <input>.view.svg)")
	return cmd
}

// viewModel is the bubbletea model of the interactive viewer.
type viewModel struct {
	renderer *radial.Renderer
	layout   *layout.Layout
	output   string

	initScale  float64
	initOffset geom.Vec

	writes int
	err    error

	// write persists the SVG; replaced in tests.
	write func(path string, data []byte) error
}

func newViewModel(r *radial.Renderer, l *layout.Layout, output string, scale float64, offset geom.Vec) (viewModel, error) {
	m := viewModel{
		renderer:   r,
		layout:     l,
		output:     output,
		initScale:  scale,
		initOffset: offset,
		write:      writeFile,
	}
	if err := r.SetScale(scale); err != nil {
		return m, err
	}
	if err := r.SetOffset(offset); err != nil {
		return m, err
	}
	r.SetLayout(l)
	if err := r.Render(); err != nil {
		return m, err
	}
	return m, m.flush()
}

func (m viewModel) Init() tea.Cmd { return nil }

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	r := m.renderer
	off := r.Offset()
	var err error
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		err = r.SetOffset(off.Add(geom.V(panStep, 0)))
	case "right", "l":
		err = r.SetOffset(off.Add(geom.V(-panStep, 0)))
	case "up", "k":
		err = r.SetOffset(off.Add(geom.V(0, panStep)))
	case "down", "j":
		err = r.SetOffset(off.Add(geom.V(0, -panStep)))
	case "+", "=":
		err = r.SetScale(min(r.Scale()*zoomFactor, maxScale))
	case "-", "_":
		err = r.SetScale(max(r.Scale()/zoomFactor, minScale))
	case "0":
		if err = r.SetScale(m.initScale); err == nil {
			err = r.SetOffset(m.initOffset)
		}
	default:
		return m, nil
	}
	if err == nil {
		err = m.flush()
	}
	m.err = err
	if err == nil {
		m.writes++
	}
	return m, nil
}

// flush re-renders if needed and writes the scene to the output file.
func (m viewModel) flush() error {
	if err := m.renderer.Render(); err != nil {
		return err
	}
	if err := m.write(m.output, scene.MarshalSVG(m.renderer.Element())); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", m.output)
	}
	return nil
}

func (m viewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("kintree view"))
	b.WriteString("\n\n")

	w, h := m.renderer.Size()
	off := m.renderer.Offset()
	rows := [][2]string{
		{"output", m.output},
		{"size", fmt.Sprintf("%s × %s", scene.FormatFloat(w), scene.FormatFloat(h))},
		{"scale", StyleNumber.Render(fmt.Sprintf("%.3g", m.renderer.Scale()))},
		{"offset", StyleNumber.Render(fmt.Sprintf("%s, %s", scene.FormatFloat(off.X), scene.FormatFloat(off.Y)))},
		{"persons", fmt.Sprint(m.layout.Len())},
	}
	var body strings.Builder
	for i, row := range rows {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(viewLabelStyle.Render(row[0]) + " " + StyleValue.Render(row[1]))
	}
	b.WriteString(viewBoxStyle.Render(body.String()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err) + "\n")
	}

	keys := []string{"←↑↓→ pan", "+/- zoom", "0 reset", "q quit"}
	for i, k := range keys {
		keys[i] = viewKeyStyle.Render(k)
	}
	b.WriteString(StyleDim.Render(strings.Join(keys, "  ")))
	b.WriteString("\n")
	return b.String()
}
