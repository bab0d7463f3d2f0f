package window

import (
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"
)

// loop is the per-window render state machine driven by the host's draw
// callback.
type loop struct {
	r    Renderer
	quit func()

	started bool
	closed  bool
	err     error

	frames uint64
	start  time.Time
	now    func() time.Time

	title    string
	setTitle func(string)
}

func newLoop(r Renderer, quit func()) *loop {
	return &loop{r: r, quit: quit, now: time.Now}
}

// frame runs one iteration. Frames with no device or an empty surface
// (for example while minimized) are skipped.
func (l *loop) frame(provider gpucontext.DeviceProvider, target any, width, height int) {
	if l.err != nil || l.closed {
		return
	}
	if provider == nil || width <= 0 || height <= 0 {
		return
	}

	if !l.started {
		if err := l.r.Setup(provider); err != nil {
			l.fail(err)
			return
		}
		l.started = true
		l.start = l.now()
		slogger().Info("window: render loop started",
			slog.Int("width", width),
			slog.Int("height", height),
		)
	}

	l.syncTitle()

	err := l.r.Draw(Frame{
		Target:  target,
		Width:   width,
		Height:  height,
		Index:   l.frames,
		Elapsed: l.now().Sub(l.start),
	})
	if err != nil {
		l.fail(err)
		return
	}
	l.frames++
}

func (l *loop) syncTitle() {
	t := l.r.Title()
	if t == l.title {
		return
	}
	l.title = t
	if l.setTitle != nil {
		l.setTitle(t)
	}
}

func (l *loop) fail(err error) {
	slogger().Warn("window: render loop stopped", slog.String("err", err.Error()))
	l.err = err
	if l.quit != nil {
		l.quit()
	}
}

// shutdown tears the renderer down once. Safe to call repeatedly.
func (l *loop) shutdown() {
	if l.closed {
		return
	}
	l.closed = true
	if l.started {
		l.r.Teardown()
	}
	slogger().Info("window: closed", slog.Uint64("frames", l.frames))
}
