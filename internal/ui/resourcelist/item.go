package resourcelist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorales/shopdesk/internal/resource"
	"github.com/jmorales/shopdesk/internal/theme"
)

// row wraps an entity so it can be used in a bubbles/list.
type row[T resource.Entity] struct {
	item T
	spec Spec[T]
}

// FilterValue returns the string used for fuzzy filtering. The page's
// own search handles filtering, so this stays empty.
func (r row[T]) FilterValue() string { return "" }

// delegate renders a single entity line: status badge, title, and the
// resource-specific metadata summary.
type delegate[T resource.Entity] struct{}

func (d delegate[T]) Height() int  { return 1 }
func (d delegate[T]) Spacing() int { return 0 }

func (d delegate[T]) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d delegate[T]) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row[T])
	if !ok {
		return
	}

	status := r.item.FilterValue("status")
	badge := theme.StatusStyle(status).Render(status)

	line := fmt.Sprintf("%s %s  %s",
		badge,
		r.spec.Describe(r.item),
		theme.DimmedStyle.Render(r.spec.Summary(r.item)),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
