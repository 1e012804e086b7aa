package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows a gauge that moves up and down against a fixed maximum.
type Reporter interface {
	Start(max int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a CIReporter if the CI environment variable is set,
// otherwise a TerminalReporter. Output goes to w.
func NewReporter(w io.Writer, description string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w, description: description}
	}
	return &TerminalReporter{w: w, description: description}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(max int) {
	r.bar = progressbar.NewOptions(max,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(r.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line updates suitable for CI logs.
type CIReporter struct {
	w           io.Writer
	description string
	max         int
}

func (r *CIReporter) Start(max int) {
	r.max = max
	fmt.Fprintf(r.w, "%s (max %d)\n", r.description, max)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.max, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s complete\n", r.description)
}
