package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator prints the verbose progress of a run over files
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int
	current    int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer) *ProgressIndicator {
	return &ProgressIndicator{writer: w}
}

// Start displays the header message. The line is completed by Found.
func (p *ProgressIndicator) Start() {
	fmt.Fprint(p.writer, "Searching for files...")
}

// Found records and displays how many files the run will go through
func (p *ProgressIndicator) Found(total int) {
	p.totalFiles = total
	p.current = 0
	if total == 1 {
		fmt.Fprintln(p.writer, "1 file found.")
		return
	}
	fmt.Fprintf(p.writer, "%d files found.\n", total)
}

// Step displays progress for the current file: [N/Total] Playing "file".
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	line := fmt.Sprintf("[%d/%d] Playing \"%s\".", p.current, p.totalFiles, filename)
	paint(p.writer, color.FgCyan).Fprintln(p.writer, line)
}
