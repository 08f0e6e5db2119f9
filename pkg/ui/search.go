package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
)

const searchLimit = 8

// searchItem is one placed person the search can jump to.
type searchItem struct {
	ID    string
	Name  string
	Title string
}

// SearchModel finds a person on the current chart by fuzzy name or title.
type SearchModel struct {
	input    textinput.Model
	all      []searchItem
	filtered []searchItem
	selected int
	styles   Styles

	confirmed bool
	cancelled bool
}

// NewSearchModel indexes the people placed on a chart.
func NewSearchModel(people []layout.Box, styles Styles) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search people..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	items := make([]searchItem, 0, len(people))
	for _, b := range people {
		items = append(items, searchItem{ID: b.ID, Name: b.Person.Name, Title: b.Person.Title})
	}
	m := SearchModel{input: ti, all: items, styles: styles}
	m.filter()
	return m
}

func (m *SearchModel) filter() {
	m.selected = 0
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.filtered = m.all
		return
	}
	targets := make([]string, len(m.all))
	for i, it := range m.all {
		targets[i] = it.Name + " " + it.Title
	}
	matches := fuzzy.Find(query, targets)
	m.filtered = make([]searchItem, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.all[match.Index])
	}
}

// Update handles input.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "enter":
			m.confirmed = len(m.filtered) > 0
			m.cancelled = !m.confirmed
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.filtered)-1 {
				m.selected++
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

// Done reports whether the search has been confirmed or cancelled.
func (m SearchModel) Done() bool { return m.confirmed || m.cancelled }

// Selected returns the chosen box ID once confirmed.
func (m SearchModel) Selected() (string, bool) {
	if !m.confirmed || m.selected >= len(m.filtered) {
		return "", false
	}
	return m.filtered[m.selected].ID, true
}

// View renders the search box and the best matches.
func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("FIND PERSON") + "\n")
	b.WriteString(m.input.View() + "\n\n")
	if len(m.filtered) == 0 {
		b.WriteString(m.styles.Hint.Render("No matches"))
		return m.styles.Focused.Render(b.String())
	}
	for i, it := range m.filtered {
		if i == searchLimit {
			b.WriteString(m.styles.Hint.Render("…"))
			break
		}
		line := it.Name
		if it.Title != "" {
			line += m.styles.Desc.Render("  " + it.Title)
		}
		if i == m.selected {
			b.WriteString(m.styles.Match.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return m.styles.Focused.Render(strings.TrimRight(b.String(), "\n"))
}
