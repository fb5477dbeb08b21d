// Package main provides UI utilities for the titlex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// UI provides user-friendly output utilities, muted to plain stdout/stderr
// writes when running in JSON mode so structured output stays parseable.
type UI struct {
	noColor  bool
	jsonMode bool
}

// NewUI creates a new UI instance.
func NewUI(jsonMode, noColor bool) *UI {
	if noColor {
		color.NoColor = true
	}
	return &UI{noColor: noColor, jsonMode: jsonMode}
}

// Success prints a green success line.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.Green("✓ " + fmt.Sprintf(format, args...))
}

// Error prints a red error line to stderr.
func (ui *UI) Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning line.
func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.Yellow("⚠ " + fmt.Sprintf(format, args...))
}

// Step prints a step marker for a long-running operation.
func (ui *UI) Step(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.Cyan("→ " + fmt.Sprintf(format, args...))
}

// Section prints a section header.
func (ui *UI) Section(title string) {
	if ui.jsonMode {
		return
	}
	fmt.Printf("\n%s\n", title)
	fmt.Println(underline(len(title)))
}

// ProgressBar returns a progress bar over total items, or nil in JSON mode
// or when stdout isn't a terminal — matching the teacher's rule that bars
// never render against piped output.
func (ui *UI) ProgressBar(description string, total int64) *progressbar.ProgressBar {
	if ui.jsonMode || !IsTerminal() {
		return nil
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("titles"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}

// Table prints a simple column-aligned table.
func (ui *UI) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	printRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Printf("%-*s  ", w, cell)
		}
		fmt.Println()
	}
	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
}

func underline(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
