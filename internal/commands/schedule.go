package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/prepaid/internal/report"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

func newScheduleCommand(root *rootOptions) *cobra.Command {
	var o overrides
	var grid bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadSettings(cmd, root, &o)
			if err != nil {
				return err
			}

			rows, _, err := generate(cmd.Context(), s, root.logger)
			if err != nil {
				return err
			}

			if grid {
				return printGrid(cmd.OutOrStdout(), rows)
			}
			return printSummary(cmd.OutOrStdout(), rows)
		},
	}

	addOverrideFlags(cmd, &o)
	cmd.Flags().BoolVar(&grid, "grid", false, "print every month column")

	return cmd
}

func printSummary(w io.Writer, rows []schedule.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tINVOICE\tCOST\tMONTHLY\tSTART\tEND\tFILLED\tDEDUCTED\tBALANCE")

	total := decimal.Zero
	for _, row := range rows {
		end := "-"
		if last, ok := row.LastActive(); ok {
			end = last.Label()
		}
		if row.Truncated() {
			end += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			row.Item.Name,
			row.Item.InvoiceRef,
			row.Item.Cost.StringFixed(2),
			row.MonthlyValue,
			row.Item.StartMonth.Label(),
			end,
			row.FilledMonths,
			row.DeductedMonths,
			row.Balance,
		)
		total = total.Add(row.Balance)
	}
	fmt.Fprintf(tw, "\t\t\t\t\t\t\t%s\t%s\n", strings.TrimSuffix(report.TotalLabel, ":"), total.StringFixed(2))
	return tw.Flush()
}

func printGrid(w io.Writer, rows []schedule.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	var months []string
	for _, mc := range rows[0].Columns {
		months = append(months, mc.Month.Label())
	}
	fmt.Fprintln(tw, strings.Join(report.ScheduleHeader(nil)[:3], "\t")+"\t"+strings.Join(months, "\t")+"\tBalance\t")

	for _, row := range rows {
		cells := []string{row.Item.Name, row.Item.InvoiceRef, row.Item.Cost.String()}
		for _, mc := range row.Columns {
			cells = append(cells, mc.Cell.String())
		}
		cells = append(cells, row.Balance.String())
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
