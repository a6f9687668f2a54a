package download

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	clearLine = "\r\x1b[K"
	spinner   = `|/-\`

	defaultTick           = 100 * time.Millisecond
	defaultUpdateInterval = time.Second
)

// Reporter renders live speed/ETA from a shared Status on a fixed
// tick, recomputing the speed figure at a coarser interval so bursty
// I/O does not make the number jitter. It renders the final summary
// exactly once when the status reports finish.
type Reporter struct {
	status         *Status
	out            io.Writer
	tick           time.Duration
	updateInterval time.Duration

	spinnerPos int
	statusLine string
	prevBytes  int64
	prevTime   time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewReporter(status *Status, out io.Writer) *Reporter {
	return &Reporter{
		status:         status,
		out:            out,
		tick:           defaultTick,
		updateInterval: defaultUpdateInterval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

func (r *Reporter) Start() {
	r.prevTime = time.Now()
	r.prevBytes = r.status.Downloaded()
	go r.run()
}

// Stop ends the reporter without a summary, used when the transfer
// fails before completion.
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *Reporter) run() {
	defer close(r.doneCh)
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			// Finish is checked first so the summary is never skipped.
			if r.status.HasFinished() {
				r.sumUp()
				return
			}
			r.reportSpeed()
		}
	}
}

func (r *Reporter) reportSpeed() {
	now := time.Now()

	if now.Sub(r.prevTime) >= r.updateInterval {
		downloaded := r.status.Downloaded()
		elapsed := now.Sub(r.prevTime).Seconds()
		var speed float64
		if elapsed > 0 {
			speed = float64(downloaded-r.prevBytes) / elapsed
		}

		total, known := r.status.TotalSize()
		if !known {
			r.statusLine = fmt.Sprintf("%10s %10s/s",
				HumanizeBytes(float64(downloaded)),
				HumanizeBytes(speed))
		} else {
			var percentage float64
			if total != 0 {
				percentage = float64(downloaded) / float64(total) * 100
			}
			eta := "-:--:--"
			if speed != 0 {
				s := int64(float64(total-downloaded) / speed)
				h := s / 3600
				m := (s % 3600) / 60
				s = s % 60
				eta = fmt.Sprintf("%d:%02d:%02d", h, m, s)
			}
			r.statusLine = fmt.Sprintf("% 6.2f %% %10s %10s/s %8s ETA",
				percentage,
				HumanizeBytes(float64(downloaded)),
				HumanizeBytes(speed),
				eta)
		}

		r.prevTime = now
		r.prevBytes = downloaded
	}

	fmt.Fprintf(r.out, "%s %c %s", clearLine, spinner[r.spinnerPos], r.statusLine)
	r.flush()
	r.spinnerPos = (r.spinnerPos + 1) % len(spinner)
}

func (r *Reporter) sumUp() {
	actuallyDownloaded := r.status.Downloaded() - r.status.ResumedFrom()
	timeTaken := r.status.TimeTaken().Seconds()

	fmt.Fprint(r.out, clearLine)

	speed := float64(actuallyDownloaded)
	if timeTaken != 0 {
		speed = float64(actuallyDownloaded) / timeTaken
	}

	fmt.Fprintf(r.out, "Done. %s in %.5fs (%s/s)\n",
		HumanizeBytes(float64(actuallyDownloaded)),
		timeTaken,
		HumanizeBytes(speed))
	r.flush()
}

func (r *Reporter) flush() {
	if f, ok := r.out.(interface{ Flush() error }); ok {
		f.Flush()
	}
}

// wait blocks until the reporter goroutine exits. Used by tests and
// by Download.Finish so the summary lands before the process moves on.
func (r *Reporter) wait() {
	<-r.doneCh
}
