package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Tabs   TabsTheme
	List   ListTheme
	Dialog DialogTheme
	Footer FooterTheme

	// Background and Accent are the endpoints of the dialog fade-in.
	Background string
	Accent     string
}

// TabsTheme styles the collection tab bar.
type TabsTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Gap      lipgloss.Style
}

// ListTheme styles collection rows.
type ListTheme struct {
	Row      lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Control  lipgloss.Style
	Trigger  lipgloss.Style
	Empty    lipgloss.Style
}

// DialogTheme styles the add and edit dialogs. The border color is set per
// frame from the fade.
type DialogTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Hint  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := "#FF5FD7" // 212
	background := "#1C1C1C"

	activeTab := lipgloss.NewStyle().
		Foreground(lipgloss.Color(accent)).
		Bold(true).
		Underline(true)

	return Theme{
		Background: background,
		Accent:     accent,
		Tabs: TabsTheme{
			Active:   activeTab,
			Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Gap:      lipgloss.NewStyle().Padding(0, 1),
		},
		List: ListTheme{
			Row:      lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
			Control:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Trigger:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Dialog: DialogTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Hint:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
	}
}
