package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/loader"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

const anyScope = "(all)"

// ScopePicker narrows the chart to a division, department and team.
// Departments follow the chosen division and teams follow both.
type ScopePicker struct {
	form  *huh.Form
	scope *model.Scope
}

// NewScopePicker builds the picker over records, starting at current.
func NewScopePicker(records []model.DirectoryRecord, current model.Scope, width int) *ScopePicker {
	p := &ScopePicker{scope: &model.Scope{}}
	*p.scope = current

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("division").
				Title("Division").
				Options(scopeOptions(loader.ScopeOptions(records, model.Scope{}).Divisions)...).
				Value(&p.scope.Division),
			huh.NewSelect[string]().
				Key("department").
				Title("Department").
				OptionsFunc(func() []huh.Option[string] {
					return scopeOptions(loader.ScopeOptions(records, model.Scope{Division: p.scope.Division}).Departments)
				}, &p.scope.Division).
				Value(&p.scope.Department),
			huh.NewSelect[string]().
				Key("team").
				Title("Team").
				OptionsFunc(func() []huh.Option[string] {
					return scopeOptions(loader.ScopeOptions(records, model.Scope{
						Division:   p.scope.Division,
						Department: p.scope.Department,
					}).Teams)
				}, []any{&p.scope.Division, &p.scope.Department}).
				Value(&p.scope.Team),
		),
	).WithShowHelp(true)
	if width > 0 {
		p.form = p.form.WithWidth(min(width, 60))
	}
	return p
}

// scopeOptions prepends the "all" entry, whose value is the empty string.
func scopeOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values)+1)
	opts = append(opts, huh.NewOption(anyScope, ""))
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

// Init starts the form.
func (p *ScopePicker) Init() tea.Cmd { return p.form.Init() }

// Update forwards msg to the form.
func (p *ScopePicker) Update(msg tea.Msg) tea.Cmd {
	m, cmd := p.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		p.form = f
	}
	return cmd
}

// Done reports whether the form was submitted or aborted.
func (p *ScopePicker) Done() bool {
	return p.form.State != huh.StateNormal
}

// Scope returns the chosen scope, or false if the picker was aborted.
func (p *ScopePicker) Scope() (model.Scope, bool) {
	if p.form.State != huh.StateCompleted {
		return model.Scope{}, false
	}
	return *p.scope, true
}

// View renders the form.
func (p *ScopePicker) View() string { return p.form.View() }
