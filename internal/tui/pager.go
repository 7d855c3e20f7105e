package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var pagerFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// pagerModel scrolls long output inside a viewport
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := msg.Height - 1 // footer
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	footer := pagerFooterStyle.Render(fmt.Sprintf("%s  %3.f%%  (q to quit)", m.title, m.viewport.ScrollPercent()*100))
	return m.viewport.View() + "\n" + footer
}

// NeedsPager reports whether content is taller than the terminal
func NeedsPager(content string) bool {
	if !IsTTY() {
		return false
	}
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return false
	}
	return strings.Count(content, "\n") >= height
}

// Page shows content in a full screen scrollable view
func Page(title, content string) error {
	if err := checkInteractiveAllowed(); err != nil {
		return err
	}
	p := tea.NewProgram(newPagerModel(title, content), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
