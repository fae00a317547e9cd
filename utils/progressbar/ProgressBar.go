// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
)

// ProgressBar prints a terminal progress bar that fills as Increment
// is called. Unlike a timer-driven bar, updates happen synchronously
// on each Increment so that bar redraws never interleave with other
// terminal output between increments.
type ProgressBar struct {
	// width determines the number of characters wide that the
	// progress bar should be
	width int

	// maxProgress determines the number of times Increment should be
	// called before the progress bar reaches 100%
	maxProgress int

	currentProgress int
	closed          bool
}

// New returns a new progress bar that is width characters wide and
// reaches 100% capacity after max Increment calls.
func New(width, max int) *ProgressBar {
	return &ProgressBar{
		width:       width,
		maxProgress: max,
	}
}

// Increment increments the internal progress counter and redraws the
// bar. Each time an iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.closed || p.currentProgress >= p.maxProgress {
		return
	}
	p.currentProgress++
	p.draw()
}

// Close closes the progress bar so that it will no longer display to
// the screen
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	p.closed = true
	fmt.Println() // Jump to next line after printed bar
}

func (p *ProgressBar) draw() {
	var bar strings.Builder
	bar.WriteString("|")

	filled := p.currentProgress * p.width / p.maxProgress
	for i := 0; i < filled; i++ {
		bar.WriteString("█")
	}
	for i := filled; i < p.width; i++ {
		bar.WriteString(" ")
	}
	fmt.Fprintf(&bar, "| [%d/%d]", p.currentProgress, p.maxProgress)

	fmt.Printf("\r\033[K%v", bar.String())
}
