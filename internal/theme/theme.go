package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorales/shopdesk/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps overlay content areas (forms, notification panel).
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle de-emphasizes completed or inactive rows.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ErrorBannerStyle renders the persistent error line above a list that
// is showing stale data after a failed load.
var ErrorBannerStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true).
	Padding(0, 1)

// statusColors maps resource lifecycle statuses to colors. Statuses from
// different resources share the palette.
var statusColors = map[string]lipgloss.AdaptiveColor{
	model.JobStatusPending:          ColorYellow,
	model.JobStatusInProgress:       ColorBlue,
	model.JobStatusAwaitingParts:    ColorOrange,
	model.JobStatusCompleted:        ColorGreen,
	model.JobStatusCancelled:        ColorGray,
	model.CustomerStatusActive:      ColorGreen,
	model.CustomerStatusInactive:    ColorGray,
	model.RefundStatusApproved:      ColorGreen,
	model.RefundStatusRejected:      ColorRed,
	model.RefundStatusProcessed:     ColorBlue,
	model.WarrantyStatusExpired:     ColorGray,
	model.WarrantyStatusClaimed:     ColorOrange,
	model.WarrantyStatusVoid:        ColorRed,
	model.TechnicianStatusAvailable: ColorGreen,
	model.TechnicianStatusBusy:      ColorOrange,
	model.TechnicianStatusOff:       ColorGray,
}

// StatusStyle returns a color-coded style for a lifecycle status.
func StatusStyle(status string) lipgloss.Style {
	color, ok := statusColors[status]
	if !ok {
		color = ColorGray
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// PriorityStyle returns a style for a low/medium/high priority value.
func PriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}

// NotificationStyle returns a style for a notification type.
func NotificationStyle(typ string) lipgloss.Style {
	switch typ {
	case model.NotificationSuccess:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case model.NotificationWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.NotificationError:
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	}
}

// ToastStyle returns a style for a transient status-bar message level.
func ToastStyle(level int) lipgloss.Style {
	switch level {
	case 1: // success
		return lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	case 2: // error
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorWhite)
	}
}
