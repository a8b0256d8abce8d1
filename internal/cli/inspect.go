package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/io"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/radial"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// Column indices of the inspect table.
const (
	colID = iota
	colName
	colPosition
	colRotation
	colSide
	colAnchor
	colClasses
)

var inspectHeaders = []string{"ID", "Name", "Position", "Rotation", "Side", "Anchor", "Classes"}

// inspectCommand prints how every person in a layout will be drawn.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Show the resolved placement of every person",
		Long: `Print a table of every positioned person with the rotation that will be
drawn, the side its labels go on and the CSS classes of its node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			rows, err := inspectRows(l)
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(args[0]))
			fmt.Println(renderInspectTable(rows))
			printStats(l.Len(), len(l.Scaffolding), false)
			return nil
		},
	}
}

// inspectRows resolves one table row per positioned person, in layout order.
func inspectRows(l *layout.Layout) ([][]string, error) {
	people := l.People()
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		pl, err := radial.Place(l, p)
		if err != nil {
			return nil, err
		}
		side := "right"
		switch {
		case pl.IsRoot:
			side = "root"
		case pl.TextOnLeft:
			side = "left"
		}
		name := p.FullName()
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{
			p.ID,
			name,
			fmt.Sprintf("%s, %s", scene.FormatFloat(pl.Position.X), scene.FormatFloat(pl.Position.Y)),
			scene.FormatFloat(pl.Degrees) + "°",
			side,
			pl.Anchor,
			strings.Join(radial.Classes(p, pl.IsRoot), " "),
		})
	}
	return rows, nil
}

func renderInspectTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(inspectHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 { // header
				return headerStyle.Padding(0, 1)
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			switch col {
			case colID:
				return base.Foreground(colorWhite)
			case colPosition, colRotation:
				return base.Foreground(colorCyan)
			case colSide:
				if rows[row][colSide] == "root" {
					return base.Bold(true).Foreground(colorGreen)
				}
			case colClasses:
				for class, style := range styleSex {
					if strings.Contains(rows[row][colClasses], class) {
						return base.Foreground(style.GetForeground())
					}
				}
			}
			return base.Foreground(colorGray)
		}).
		Render()
}
