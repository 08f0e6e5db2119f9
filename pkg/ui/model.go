// Package ui is the interactive org chart: a scope picker, the chart in a
// scrolling viewport, a detail sheet and a person search.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/connector"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/export"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/loader"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/render"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/watcher"
)

// EmptyMessage is shown when the scope has no one to put at the top.
const EmptyMessage = "No hierarchy data found."

// header, divider and footer
const chromeHeight = 3

type focus int

const (
	focusChart focus = iota
	focusDetail
	focusPicker
	focusSearch
)

// Options configures the model. Admin, policies and ranks are injected here
// and never read from globals.
type Options struct {
	DataPath  string
	Records   []model.DirectoryRecord
	Scope     model.Scope
	Region    string
	Mode      layout.Mode
	NodeWidth int
	Admin     bool
	Policies  layout.Policies
	Ranks     hierarchy.RankTable
	ExportDir string
	Watch     bool
	Debounce  time.Duration
	Log       logrus.FieldLogger

	// OnOpen receives the original record of a person whose detail is opened.
	OnOpen func(*model.DirectoryRecord)
}

// Model is the main bubbletea model for the org chart.
type Model struct {
	opts   Options
	log    logrus.FieldLogger
	keys   keyMap
	styles Styles

	records   []model.DirectoryRecord
	people    []model.DirectoryRecord // scoped rows the chart's people point into
	resources []model.DirectoryRecord
	scope     model.Scope
	policy    layout.Policy

	chart    *chartView
	viewport viewport.Model
	help     help.Model
	overlay  HelpOverlayModel
	picker   *ScopePicker
	search   SearchModel
	focus    focus
	detail   string

	watcher *watcher.Watcher

	status    string
	statusErr bool
	width     int
	height    int
	ready     bool
}

// NewModel creates the model. When opts.Watch is set and a data path is
// given, the file is watched for changes.
func NewModel(opts Options) Model {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(nopWriter{})
		log = l
	}
	if opts.NodeWidth == 0 {
		opts.NodeWidth = render.DefaultNodeWidth
	}
	if opts.Policies == nil {
		opts.Policies = layout.DefaultPolicies()
	}
	keys := defaultKeys()
	styles := DefaultStyles()

	m := Model{
		opts:    opts,
		log:     log,
		keys:    keys,
		styles:  styles,
		records: opts.Records,
		scope:   opts.Scope,
		chart:   newChartView(render.DefaultTheme(), opts.NodeWidth, opts.Mode),
		help:    help.New(),
		overlay: NewHelpOverlayModel(keys, styles, opts.Admin),
	}

	if opts.Watch && opts.DataPath != "" {
		w, err := watcher.NewWatcher(opts.DataPath,
			watcher.WithDebounceDuration(opts.Debounce),
			watcher.WithLogger(log),
		)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.WithError(err).Warn("live reload disabled")
		} else {
			m.watcher = w
		}
	}

	m.applyScope()
	return m
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.records == nil && m.opts.DataPath != "" {
		cmds = append(cmds, loadCmd(m.opts.DataPath, m.log))
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Stop releases the file watcher.
func (m Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

func loadCmd(path string, log logrus.FieldLogger) tea.Cmd {
	return func() tea.Msg {
		records, err := loader.LoadRecords(path, loader.WithWarningHandler(func(w loader.Warning) {
			log.WithField("path", path).Warn(w.String())
		}))
		return dataLoadedMsg{records: records, err: err}
	}
}

// applyScope narrows the records to the current scope and rebuilds the
// hierarchy. The caller relayouts.
func (m *Model) applyScope() {
	m.policy = m.opts.Policies.For(m.scope.Division)
	records := loader.FilterRegion(m.records, m.opts.Region)
	m.people, m.resources = loader.Select(records, m.scope, m.policy.IncludeLeaders)
	m.chart.setData(hierarchy.People(m.people), m.policy, m.opts.Ranks)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(1, msg.Height-chromeHeight)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.help.Width = msg.Width
		cmd := m.chart.resize(msg.Width)
		m.refresh()
		return m, cmd

	case connector.FrameMsg:
		if m.chart.measure(msg) {
			m.refresh()
		}
		return m, nil

	case FileChangedMsg:
		m.log.WithField("path", m.opts.DataPath).Info("directory changed, reloading")
		return m, tea.Batch(loadCmd(m.opts.DataPath, m.log), WatchFileCmd(m.watcher))

	case dataLoadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err), true)
			m.log.WithError(msg.err).Error("load failed")
			return m, nil
		}
		m.records = msg.records
		m.applyScope()
		m.log.WithFields(logrus.Fields{"records": len(msg.records), "people": len(m.people)}).Info("directory loaded")
		m.setStatus(fmt.Sprintf("Loaded %d records", len(msg.records)), false)
		cmd := m.chart.relayout(connector.ReasonData)
		m.refresh()
		return m, cmd

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
			m.log.WithError(msg.err).Error("export failed")
		} else {
			m.setStatus("Exported "+strings.Join(msg.paths, ", "), false)
			m.log.WithField("paths", msg.paths).Info("chart exported")
		}
		return m, nil

	case statusMsg:
		m.setStatus(msg.text, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	// Forward anything else (cursor blinks, form internals) to the modal.
	switch m.focus {
	case focusPicker:
		return m.updatePicker(msg)
	case focusSearch:
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.overlay.IsVisible() {
		m.overlay, _ = m.overlay.Update(msg)
		return m, nil
	}
	switch m.focus {
	case focusPicker:
		return m.updatePicker(msg)
	case focusSearch:
		return m.updateSearch(msg)
	case focusDetail:
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
			m.focus = focusChart
			m.refresh()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyEmail()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	moved := false
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.overlay.Toggle()
	case key.Matches(msg, m.keys.Up):
		moved = m.chart.move(0, -1)
	case key.Matches(msg, m.keys.Down):
		moved = m.chart.move(0, 1)
	case key.Matches(msg, m.keys.Left):
		moved = m.chart.move(-1, 0)
	case key.Matches(msg, m.keys.Right):
		moved = m.chart.move(1, 0)
	case key.Matches(msg, m.keys.Top):
		moved = m.chart.selectTop()
	case key.Matches(msg, m.keys.Mode):
		cmd = m.chart.setMode(m.chart.mode.Next())
		m.refresh()
	case key.Matches(msg, m.keys.Group):
		cmd = m.chart.toggleGroup()
		m.refresh()
	case key.Matches(msg, m.keys.Open):
		cmd = m.open()
	case key.Matches(msg, m.keys.Scope):
		m.picker = NewScopePicker(m.records, m.scope, m.width)
		m.focus = focusPicker
		cmd = m.picker.Init()
	case key.Matches(msg, m.keys.Search):
		if m.chart.placement != nil {
			m.search = NewSearchModel(m.chart.placement.People(), m.styles)
			m.focus = focusSearch
		}
	case key.Matches(msg, m.keys.Copy):
		cmd = m.copyEmail()
	case key.Matches(msg, m.keys.Export):
		cmd = m.exportChart()
	case key.Matches(msg, m.keys.Reload):
		if m.opts.DataPath != "" {
			cmd = loadCmd(m.opts.DataPath, m.log)
		}
	case msg.String() == "pgdown":
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case msg.String() == "pgup":
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	}
	if moved {
		m.refresh()
		m.scrollToSelection()
	}
	return m, cmd
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.picker == nil {
		m.focus = focusChart
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.picker = nil
		m.focus = focusChart
		m.refresh()
		return m, nil
	}
	cmd := m.picker.Update(msg)
	if !m.picker.Done() {
		return m, cmd
	}
	scope, ok := m.picker.Scope()
	m.picker = nil
	m.focus = focusChart
	if !ok {
		m.refresh()
		return m, nil
	}
	m.scope = scope
	m.applyScope()
	m.log.WithField("scope", scope.String()).Info("scope changed")
	cmd = m.chart.relayout(connector.ReasonData)
	m.refresh()
	m.viewport.GotoTop()
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if !m.search.Done() {
		return m, cmd
	}
	m.focus = focusChart
	if id, ok := m.search.Selected(); ok {
		m.chart.selectBox(id)
	}
	m.refresh()
	m.scrollToSelection()
	return m, nil
}

// open invokes the open-detail callback for the selected person, or flips
// the group when a group header is selected.
func (m *Model) open() tea.Cmd {
	b, ok := m.chart.selectedBox()
	if !ok {
		return nil
	}
	switch b.Kind {
	case layout.KindGroupHeader:
		cmd := m.chart.toggleGroup()
		m.refresh()
		return cmd
	case layout.KindPerson:
	default:
		return nil
	}

	p := b.Person
	if m.opts.OnOpen != nil && p.Record != nil {
		m.opts.OnOpen(p.Record)
	}
	var manager *model.Person
	if mgr, ok := m.chart.person(p.ManagerKey); ok && p.ManagerKey != p.SelfKey {
		manager = &mgr
	}
	m.detail = renderMarkdown(DetailMarkdown(p, manager, m.chart.reports(p.SelfKey)), m.width-4)
	m.focus = focusDetail
	m.viewport.SetContent(m.detail)
	m.viewport.GotoTop()
	return nil
}

func (m *Model) copyEmail() tea.Cmd {
	b, ok := m.chart.selectedBox()
	if !ok || b.Kind != layout.KindPerson || b.Person.Record == nil || model.IsNonValue(b.Person.Record.Email) {
		return statusCmd("No email to copy", true)
	}
	email := b.Person.Record.Email
	return func() tea.Msg {
		if err := clipboard.WriteAll(email); err != nil {
			return statusMsg{text: fmt.Sprintf("Clipboard unavailable: %v", err), err: true}
		}
		return statusMsg{text: "Copied " + email}
	}
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, err: isErr} }
}

// exportChart writes SVG and PNG renders of the current chart. Admin only.
func (m *Model) exportChart() tea.Cmd {
	if !m.opts.Admin {
		return statusCmd("Export is available to admins only", true)
	}
	if m.chart.empty() {
		return statusCmd("Nothing to export", true)
	}
	dir := m.opts.ExportDir
	if dir == "" {
		dir = "."
	}
	base := filepath.Join(dir, exportName(m.scope, m.chart.mode))
	paths := []string{base + ".svg", base + ".png"}
	opts := export.ChartSnapshotOptions{
		Title:    "Org chart",
		Subtitle: m.scope.String() + " · " + string(m.chart.mode),
		Chart:    m.chart.chart,
	}
	return func() tea.Msg {
		return exportDoneMsg{paths: paths, err: export.SaveAll(context.Background(), opts, paths...)}
	}
}

// exportName turns a scope into a file name stem such as
// "sales-east-leveled".
func exportName(s model.Scope, mode layout.Mode) string {
	var parts []string
	for _, p := range []string{s.Division, s.Department, s.Team} {
		if p == "" {
			continue
		}
		p = strings.ToLower(p)
		p = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return '-'
		}, p)
		parts = append(parts, strings.Trim(p, "-"))
	}
	if len(parts) == 0 {
		parts = append(parts, "all")
	}
	return "orgchart-" + strings.Join(append(parts, string(mode)), "-")
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

// refresh puts the chart and resource callouts into the viewport.
func (m *Model) refresh() {
	if !m.ready || m.focus == focusDetail {
		return
	}
	m.viewport.SetContent(m.chartContent())
}

func (m Model) chartContent() string {
	var b strings.Builder
	if m.chart.empty() {
		b.WriteString(m.styles.Empty.Render(EmptyMessage))
	} else {
		b.WriteString(m.chart.view())
	}
	if len(m.resources) > 0 {
		b.WriteString("\n" + m.styles.Section.Render("RESOURCES") + "\n")
		for _, r := range m.resources {
			b.WriteString(m.styles.Resource.Render(resourceLine(r)) + "\n")
		}
	}
	return b.String()
}

func resourceLine(r model.DirectoryRecord) string {
	name := r.DisplayName()
	var extra []string
	for _, v := range []string{r.TeamEmail, r.SupportPhone, r.Hours, r.Location} {
		if !model.IsNonValue(v) {
			extra = append(extra, v)
		}
	}
	if len(extra) == 0 {
		return "  " + name
	}
	return "  " + name + " · " + strings.Join(extra, " · ")
}

// scrollToSelection keeps the selected card inside the viewport.
func (m *Model) scrollToSelection() {
	r, ok := m.chart.selectedRect()
	if !ok || !m.ready {
		return
	}
	top, bottom := int(r.Y), int(r.Bottom())
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading org chart..."
	}

	var body string
	switch {
	case m.overlay.IsVisible():
		body = m.center(m.overlay.View())
	case m.focus == focusPicker && m.picker != nil:
		body = m.center(m.styles.Focused.Render(m.picker.View()))
	case m.focus == focusSearch:
		body = m.center(m.search.View())
	default:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		RenderDivider(m.width),
		body,
		m.footer(),
	)
}

func (m Model) center(s string) string {
	return lipgloss.Place(m.width, max(1, m.height-chromeHeight), lipgloss.Center, lipgloss.Center, s)
}

func (m Model) header() string {
	parts := []string{
		m.styles.Header.Render("Org Chart"),
		m.styles.Crumb.Render(" " + m.scope.String() + " "),
		m.styles.Mode.Render(string(m.chart.mode)),
	}
	if m.opts.Admin {
		parts = append(parts, m.styles.AdminFlag.Render("admin"))
	}
	if m.watcher != nil {
		parts = append(parts, m.styles.Hint.Render(" live"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) footer() string {
	if m.status != "" {
		if m.statusErr {
			return m.styles.Error.Render(m.status)
		}
		return m.styles.Status.Render(m.status)
	}
	if m.focus == focusDetail {
		return m.styles.Footer.Render("esc back · y copy email · ↑/↓ scroll")
	}
	return m.help.View(m.keys)
}

// Scope returns the scope being charted.
func (m Model) Scope() model.Scope { return m.scope }

// Mode returns the current layout mode.
func (m Model) Mode() layout.Mode { return m.chart.mode }

// Selected returns the ID of the selected box.
func (m Model) Selected() string { return m.chart.selected }
