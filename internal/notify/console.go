package notify

import (
	"fmt"
	"io"
	"sync"

	"NewsSnap/internal/ports"
)

// Console prints notifications as terminal lines.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	board *board
}

var _ ports.Notifier = (*Console)(nil)

// NewConsole writes to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, board: newBoard()}
}

// ShowLoading prints a progress line and returns its handle.
func (c *Console) ShowLoading(message string) ports.NotificationID {
	id := c.board.addLoading(message)
	c.printf("… %s\n", message)
	return id
}

// Dismiss hides a loading line. Terminal output cannot be erased, so this only updates bookkeeping.
func (c *Console) Dismiss(id ports.NotificationID) {
	c.board.remove(id)
}

// DismissAll is safe when nothing is active.
func (c *Console) DismissAll() {
	c.board.clear()
}

// ShowSuccess prints a success line.
func (c *Console) ShowSuccess(message string) {
	if message == "" {
		return
	}
	c.printf("✓ %s\n", message)
}

// ShowError prints an error line unless the same dedupe key is still visible.
func (c *Console) ShowError(message, dedupeKey string) {
	if !c.board.addError(message, dedupeKey) {
		return
	}
	c.printf("✗ %s\n", message)
}

func (c *Console) printf(format string, args ...any) {
	if c.out == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, args...)
}
