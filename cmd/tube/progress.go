package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/tube/internal/model"
)

// logInterval throttles progress lines when output is not a terminal.
const logInterval = 2 * time.Second

// progressObserver renders orchestrator notifications on the terminal: a bar
// on an interactive terminal, periodic lines otherwise.
type progressObserver struct {
	out io.Writer
	bar *progressbar.ProgressBar

	mu      sync.Mutex
	lastLog time.Time
	now     func() time.Time
}

func newProgressObserver(out io.Writer) *progressObserver {
	o := &progressObserver{out: out, now: time.Now}
	if isTerminal(out) {
		o.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription(string(model.StageIdle)),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	return o
}

func (o *progressObserver) OnStage(stage model.Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.bar != nil {
		if stage.IsFinished() {
			_ = o.bar.Finish()
			return
		}
		o.bar.Describe(stage.String())
		return
	}
	if stage.IsActive() {
		fmt.Fprintf(o.out, "%s...\n", stage)
	}
}

func (o *progressObserver) OnProgress(p model.Progress) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.bar != nil {
		_ = o.bar.Set(int(p.Percent))
		if p.BytesPerSecond > 0 {
			o.bar.Describe(fmt.Sprintf("%s %s/s", p.Stage, humanize.Bytes(uint64(p.BytesPerSecond))))
		}
		return
	}

	now := o.now()
	if p.Percent < 100 && now.Sub(o.lastLog) < logInterval {
		return
	}
	o.lastLog = now
	fmt.Fprintln(o.out, progressLine(p))
}

// progressLine formats a progress sample for log output.
func progressLine(p model.Progress) string {
	line := fmt.Sprintf("%5.1f%%", p.Percent)
	if p.TotalBytes > 0 {
		line += fmt.Sprintf(" of %s", humanize.Bytes(uint64(p.TotalBytes)))
	}
	if p.BytesPerSecond > 0 {
		line += fmt.Sprintf(" at %s/s", humanize.Bytes(uint64(p.BytesPerSecond)))
	}
	if p.ETA > 0 {
		line += " ETA " + p.ETAString()
	}
	return line
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
