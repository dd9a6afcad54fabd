package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
)

// ProgressBar redraws a single status line with a gradient bar. A nil
// *ProgressBar is valid and draws nothing.
type ProgressBar struct {
	mu       sync.Mutex
	out      io.Writer
	bar      progress.Model
	label    string
	lastDraw time.Time
	drawn    bool
}

// NewProgressBar returns a progress bar for out, or nil when out is not an
// interactive terminal.
func NewProgressBar(out io.Writer) *ProgressBar {
	f, ok := out.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}
	return newProgressBar(out)
}

func newProgressBar(out io.Writer) *ProgressBar {
	return &ProgressBar{
		out: out,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(ProgressBarWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Start sets the label shown in front of the bar
func (p *ProgressBar) Start(label string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
	p.drawn = false
	p.lastDraw = time.Time{}
}

// Update redraws the line. percent is 0..100, or negative when unknown.
func (p *ProgressBar) Update(percent float64, detail string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.drawn && now.Sub(p.lastDraw) < ProgressRedraw && percent < 100 {
		return
	}
	p.lastDraw = now
	p.drawn = true
	fmt.Fprint(p.out, "\r\033[K"+p.render(percent, detail))
}

func (p *ProgressBar) render(percent float64, detail string) string {
	line := p.label
	if percent >= 0 {
		if percent > 100 {
			percent = 100
		}
		line += " " + p.bar.ViewAs(percent/100) + " " + fmt.Sprintf(ProgressLabelFormat, int(percent))
	}
	if detail != "" {
		line += MiddleDotSeparator + detail
	}
	return line
}

// Done terminates the progress line
func (p *ProgressBar) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprintln(p.out)
	}
	p.drawn = false
}
