package logging

import (
	"bytes"
	"io"
	"sync"
)

// Deferred passes writes straight through to its target until Hold is
// called, then buffers them until Release. The terminal UI holds the console
// stream while it owns the screen.
type Deferred struct {
	mu     sync.Mutex
	target io.Writer
	held   bool
	buf    bytes.Buffer
}

// NewDeferred wraps target.
func NewDeferred(target io.Writer) *Deferred {
	return &Deferred{target: target}
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		return d.buf.Write(p)
	}
	return d.target.Write(p)
}

// Hold starts buffering.
func (d *Deferred) Hold() {
	d.mu.Lock()
	d.held = true
	d.mu.Unlock()
}

// Release flushes buffered output and resumes pass-through writes.
func (d *Deferred) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = false
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.target.Write(d.buf.Bytes())
	d.buf.Reset()
	return err
}
