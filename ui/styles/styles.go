package styles

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("62")
	muted  = lipgloss.Color("241")
	good   = lipgloss.Color("42")
	warn   = lipgloss.Color("214")
)

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(max(width-4, 20))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(accent).
		Bold(true).
		Padding(0, 1)
}

// ScannerBadgeStyle colours the scanner indicator by state.
func ScannerBadgeStyle(active bool) lipgloss.Style {
	color := muted
	if active {
		color = good
	}
	return lipgloss.NewStyle().Foreground(color).Bold(active).Padding(0, 1)
}

func ItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 2)
}

func SelectedItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1)
}

// PlaceholderStyle marks items whose lookup has not produced data.
func PlaceholderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(muted).Italic(true)
}

func TotalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(warn).
		Bold(true).
		Padding(0, 2).
		Align(lipgloss.Right)
}

func ModalStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(warn).
		Padding(1, 3).
		Width(min(max(width-8, 30), 60)).
		Align(lipgloss.Center)
}

func CardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1).
		Width(24)
}

func BestCardStyle() lipgloss.Style {
	return CardStyle().BorderForeground(good)
}

func BestBadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(good).
		Bold(true).
		Padding(0, 1)
}

func EmptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Padding(1, 2)
}
