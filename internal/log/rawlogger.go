package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger traces raw key events. in=true is an event received from the X
// server, in=false is an event the daemon synthesized.
type RawLogger interface {
	Log(in bool, data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw returns a RawLogger writing to w. A nil w yields a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w, now: time.Now}
}

// Log writes one line with timestamp, direction and hex dump.
func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 {
		return
	}
	dir := "xremap->X"
	if in {
		dir = "X->xremap"
	}
	line := fmt.Sprintf("%s %s event: %d bytes, hex: % x\n",
		r.now().Format("2006/01/02 15:04:05.000"), dir, len(data), data)

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}

type nopRaw struct{}

func (nopRaw) Log(bool, []byte) {}
