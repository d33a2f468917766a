package progress

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/minio/pkg/console"
)

const barTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{speed . }}`

// ProgressBar wrapper structure. A nil *ProgressBar is valid and does nothing.
type ProgressBar struct {
	*pb.ProgressBar
}

// Enabled reports whether progress bars should be drawn on stderr.
func Enabled(disabled bool) bool {
	if disabled {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewProgressBar - instantiate a progress bar writing to stderr.
func NewProgressBar(total int64) *ProgressBar {
	return NewProgressBarTo(os.Stderr, total)
}

// NewProgressBarTo instantiates a progress bar writing to w.
func NewProgressBarTo(w io.Writer, total int64) *ProgressBar {
	// Progress bar specific theme customization.
	console.SetColor("Bar", color.New(color.FgGreen, color.Bold))

	bar := pb.New64(total)
	bar.SetWriter(w)

	// Customize the refresh rate and behavior
	bar.SetRefreshRate(time.Millisecond * 125)
	bar.SetTemplateString(barTemplate)

	bar.Start()

	return &ProgressBar{ProgressBar: bar}
}

// NewBytesBar instantiates a progress bar that formats counts as bytes.
func NewBytesBar(total int64) *ProgressBar {
	p := NewProgressBar(total)
	p.ProgressBar.Set(pb.Bytes, true)
	return p
}

// SetCaption sets the caption of the progress bar.
func (p *ProgressBar) SetCaption(caption string) *ProgressBar {
	if p == nil {
		return p
	}
	p.ProgressBar.Set("prefix", console.Colorize("Bar", caption))
	return p
}

// Increment advances the bar by one. It is safe for concurrent use.
func (p *ProgressBar) Increment() {
	if p == nil {
		return
	}
	p.ProgressBar.Increment()
}

// Add advances the bar by n.
func (p *ProgressBar) Add(n int) {
	if p == nil {
		return
	}
	p.ProgressBar.Add(n)
}

// Finish stops refreshing the bar.
func (p *ProgressBar) Finish() {
	if p == nil {
		return
	}
	p.ProgressBar.Finish()
}
