package refresh

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// PrintReport renders the per-dataset summary and final table counts.
func PrintReport(w io.Writer, rep *Report) {
	heading := color.New(color.FgYellow, color.Bold)

	heading.Fprintln(w, "\nDatasets")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Dataset", "Source", "Year", "Read", "Loaded", "Dropped", "Status"})
	for _, r := range rep.Datasets {
		status := "loaded"
		switch {
		case r.Skipped:
			status = "skipped: " + r.SkipReason
		case r.Truncated:
			status = "truncated"
		}
		year := ""
		if r.Year != 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		table.Append([]string{
			r.Dataset,
			baseName(r.SourceFile),
			year,
			humanize.Comma(int64(r.RowsRead)),
			humanize.Comma(int64(r.RowsLoaded)),
			humanize.Comma(int64(r.DroppedTotal())),
			status,
		})
	}
	table.Render()

	if reasons := dropReasons(rep); len(reasons) > 0 {
		heading.Fprintln(w, "\nDropped rows")
		table = tablewriter.NewWriter(w)
		table.SetHeader([]string{"Dataset", "Reason", "Rows"})
		for _, row := range reasons {
			table.Append(row)
		}
		table.Render()
	}

	heading.Fprintln(w, "\nFinal database statistics")
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Table", "Records"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, t := range rep.Tables {
		table.Append([]string{t.Table, humanize.Comma(t.Rows)})
	}
	table.SetFooter([]string{"Database size", humanize.Bytes(uint64(rep.SizeBytes))})
	table.Render()
}

func dropReasons(rep *Report) [][]string {
	var rows [][]string
	for _, r := range rep.Datasets {
		reasons := make([]string, 0, len(r.Dropped))
		for reason := range r.Dropped {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			rows = append(rows, []string{r.Dataset, reason, humanize.Comma(int64(r.Dropped[reason]))})
		}
	}
	return rows
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i != -1 {
		return path[i+1:]
	}
	return path
}
