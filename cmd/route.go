package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/traveler-cli/internal/route"
)

var routeCmd = &cobra.Command{
	Use:   "route <id>...",
	Short: "Parse state route identifiers",
	Long:  "Splits route IDs such as 005, 5, 090AR or 005S123456 (or signed labels such as I-5) into SR, RRT and RRQ, and prints the signed route label.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := cfg.Engine()
		if err != nil {
			return err
		}
		formatRoutes(os.Stdout, eng.Routes, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

// formatRoutes prints one row per input. Invalid IDs are reported in the
// LABEL column rather than failing the command.
func formatRoutes(w io.Writer, p *route.Parser, inputs []string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tSR\tRRT\tRRQ\tLABEL")
	for _, in := range inputs {
		id, err := p.Parse(in)
		if err != nil && route.IsLabel(in) {
			// Signed labels such as "I-5" or "SR 20".
			if sr, lerr := p.LabelToID(in); lerr == nil {
				id, err = p.Parse(sr)
			}
		}
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%v\n", in, err)
			continue
		}
		label, err := p.IDToLabel(id.SR)
		if err != nil {
			label = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", in, id.SR, dash(id.RRT), dash(id.RRQ), label)
	}
	_ = tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
