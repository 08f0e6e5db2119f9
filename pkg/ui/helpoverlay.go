package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	keys    keyMap
	styles  Styles
	admin   bool
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(keys keyMap, styles Styles, admin bool) HelpOverlayModel {
	return HelpOverlayModel{keys: keys, styles: styles, admin: admin}
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		// Any key closes help
		m.visible = false
	}
	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Org Chart Help"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []key.Binding
	}{
		{"NAVIGATION", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Top}},
		{"CHART", []key.Binding{m.keys.Open, m.keys.Group, m.keys.Mode, m.keys.Scope, m.keys.Search}},
		{"ACTIONS", m.actions()},
	}
	for _, s := range sections {
		b.WriteString(m.styles.Section.Render(s.title) + "\n")
		for _, k := range s.keys {
			h := k.Help()
			b.WriteString("  " + m.styles.Key.Render(h.Key) + m.styles.Desc.Render(h.Desc) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Hint.Render("[Press any key to close]"))

	return m.styles.Focused.Render(b.String())
}

func (m HelpOverlayModel) actions() []key.Binding {
	out := []key.Binding{m.keys.Copy, m.keys.Reload}
	if m.admin {
		out = append(out, m.keys.Export)
	}
	return append(out, m.keys.Back, m.keys.Quit)
}
