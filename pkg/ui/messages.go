package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/watcher"
)

// FileChangedMsg is sent when the directory file changes on disk.
type FileChangedMsg struct{}

// WatchFileCmd waits for the next change reported by w.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// dataLoadedMsg carries a fresh read of the directory file.
type dataLoadedMsg struct {
	records []model.DirectoryRecord
	err     error
}

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	paths []string
	err   error
}

// statusMsg sets the footer status line.
type statusMsg struct {
	text string
	err  bool
}
