package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Result aggregates the jobs of one run.
type Result struct {
	Jobs    []Job
	Elapsed time.Duration
}

// Total returns the number of jobs in the run.
func (r Result) Total() int { return len(r.Jobs) }

func (r Result) Succeeded() int { return r.count(StatusSucceeded) }
func (r Result) Skipped() int   { return r.count(StatusSkipped) }
func (r Result) Failed() int    { return r.count(StatusFailed) }

func (r Result) count(status Status) int {
	n := 0
	for _, j := range r.Jobs {
		if j.Status == status {
			n++
		}
	}
	return n
}

// FormatDuration renders d as "12.34 segundos", "3m 5s" or "1h 2m 3s".
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	if seconds < 60 {
		return fmt.Sprintf("%.2f segundos", seconds)
	}

	total := int(seconds)
	minutes, secs := total/60, total%60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%dh %dm %ds", minutes/60, minutes%60, secs)
}

// Render writes a per-file summary table to w. Rounded borders are used
// when w is a terminal.
func (r Result) Render(w io.Writer, terminal bool) {
	jobs := append([]Job(nil), r.Jobs...)
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].InputPath < jobs[j].InputPath })

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	style := table.StyleDefault
	if terminal {
		style = table.StyleRounded
	}
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	tw.AppendHeader(table.Row{"File", "Status", "Attempts", "Duration", "Error"})
	for _, j := range jobs {
		errText := ""
		if j.Err != nil {
			errText = j.Err.Error()
		}
		tw.AppendRow(table.Row{
			filepath.Base(j.InputPath),
			string(j.Status),
			j.Attempts,
			j.Duration.Round(time.Millisecond).String(),
			errText,
		})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d files", r.Total()),
		fmt.Sprintf("%d ok / %d skipped / %d failed", r.Succeeded(), r.Skipped(), r.Failed()),
		"",
		FormatDuration(r.Elapsed),
		"",
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 60},
	})
	tw.Render()
}
