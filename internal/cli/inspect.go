package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	planio "github.com/matzehuels/facade/pkg/io"
	"github.com/matzehuels/facade/pkg/plan"
)

// inspectCommand creates the inspect command for summarizing plans.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [plan.json]",
		Short: "Summarize a plan document",
		Long: `Inspect prints the plan's identity, parameters, and a per-floor
summary table. With --interactive it opens a floor browser instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := planio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if interactive {
				return runFloorBrowser(p)
			}
			printPlanSummary(p)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse floors interactively")

	return cmd
}

func printPlanSummary(p *plan.Plan) {
	fmt.Println(StyleTitle.Render("Plan " + p.Name))
	printNewlineGap()

	printKeyValue("seed", strconv.FormatInt(p.Seed, 10))
	printKeyValue("hash", shortHash(p.Hash()))
	printKeyValue("floors", strconv.Itoa(p.FloorCount()))
	printKeyValue("door density", fmt.Sprintf("%g/m", p.Config.DoorDensity))
	printKeyValue("win density", fmt.Sprintf("%g/m", p.Config.WindowDensity))
	printNewlineGap()

	fmt.Println(floorTable(p).Render())

	doors, windows, corners, dropped := p.Totals()
	printStats(p.FloorCount(), doors, windows, corners, false)
	if dropped > 0 {
		printWarning("%d placements dropped (crowded edges)", dropped)
	}
}

// floorTable builds the per-floor summary table.
func floorTable(p *plan.Plan) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(p.Floors))
	for _, f := range p.Floors {
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			fmt.Sprintf("%.1f m", f.BaseZ),
			fmt.Sprintf("%.1f m", f.Height),
			strconv.Itoa(len(f.Doors)),
			strconv.Itoa(len(f.Windows)),
			strconv.Itoa(len(f.Corners)),
			strconv.Itoa(f.DroppedDoors + f.DroppedWindows),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Floor", "Base", "Height", "Doors", "Windows", "Corners", "Dropped").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func printNewlineGap() {
	fmt.Println()
}
