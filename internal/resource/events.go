package resource

import tea "github.com/charmbracelet/bubbletea"

// ToastLevel classifies a transient status message.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// Toast is a transient status message raised by page operations and
// shown briefly in the status bar.
type Toast struct {
	Level   ToastLevel
	Message string
}

// ToastMsg is the tea.Msg wrapper delivered to the UI.
type ToastMsg struct {
	Resource string
	Toast    Toast
}

// sendToast queues a toast without blocking; if the channel is full the
// oldest pending toast is simply not replaced and this one is dropped.
func (p *Page[T]) sendToast(t Toast) {
	select {
	case p.toastCh <- t:
	default:
	}
}

// WaitForToast returns a tea.Cmd that blocks until the next toast is
// raised. The UI re-issues it after handling each ToastMsg, mirroring
// the poller's result subscription.
func (p *Page[T]) WaitForToast() tea.Cmd {
	return func() tea.Msg {
		t, ok := <-p.toastCh
		if !ok {
			return nil
		}
		return ToastMsg{Resource: p.cfg.Name, Toast: t}
	}
}
