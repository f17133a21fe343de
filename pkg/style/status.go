package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Status of a generated file as shown to the user
type Status string

const (
	StatusWritten Status = "written" // File written to disk
	StatusSkipped Status = "skipped" // File exists and was left alone
	StatusPlanned Status = "planned" // Would be written (dry run, plan)
	StatusError   Status = "error"   // Writing failed
)

// StatusVerbs defines what each status says about a file
var StatusVerbs = map[Status]string{
	StatusWritten: "wrote",
	StatusSkipped: "exists, skipped",
	StatusPlanned: "will write",
	StatusError:   "failed",
}

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusWritten:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusPlanned:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// FileLine is one row of a file listing.
type FileLine struct {
	Path   string
	Format string
	Status Status
	Size   int
}

// RenderFileLine renders one file row.
func RenderFileLine(f FileLine) string {
	status := StatusStyle(f.Status).Sprint(fmt.Sprintf("%-16s", StatusVerbs[f.Status]))
	line := fmt.Sprintf("  %s %s", status, PathStyle.Render(f.Path))
	if f.Format != "" {
		line += " " + FormatStyle(f.Format).Render("("+f.Format+")")
	}
	if f.Size > 0 {
		line += MutedStyle.Render(fmt.Sprintf(" %dB", f.Size))
	}
	return line
}

// Summarize counts files by status, e.g. "3 written, 1 skipped".
func Summarize(files []FileLine) string {
	counts := map[Status]int{}
	for _, f := range files {
		counts[f.Status]++
	}
	var parts []string
	for _, s := range []Status{StatusWritten, StatusPlanned, StatusSkipped, StatusError} {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}
