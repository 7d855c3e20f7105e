package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitkit.dev/gitkit/internal/git"
)

// ErrCanceled is returned when the user aborts a prompt
var ErrCanceled = errors.New("canceled")

// confirmModel is a simple yes/no confirmation prompt model
type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			m.done = true
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(msg.Runes)) {
			case "y":
				m.choice = true
				m.done = true
				return m, tea.Quit
			case "n":
				m.choice = false
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yesNo := "[y/N]"
	if m.choice {
		yesNo = "[Y/n]"
	}
	return lipgloss.NewStyle().Margin(1, 0).
		Render(fmt.Sprintf("%s %s\n\n(Press y or n, Enter to accept the default, Ctrl+C to cancel)", m.prompt, yesNo))
}

// PromptConfirm asks a yes/no question
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	p := tea.NewProgram(confirmModel{prompt: prompt, choice: defaultValue},
		tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return false, err
	}

	final, ok := model.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	if final.err != nil {
		return false, final.err
	}
	return final.choice, nil
}

// branchOptions returns picker labels for branches and the index of the current one
func branchOptions(branches []git.Branch) (labels []string, current int) {
	labels = make([]string, len(branches))
	for i, b := range branches {
		labels[i] = b.Name
		if b.IsCurrent {
			current = i
			labels[i] = b.Name + " (current)"
		}
	}
	return labels, current
}

// PromptBranch lets the user pick a branch to check out
func PromptBranch(message string, branches []git.Branch) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}
	if len(branches) == 0 {
		return "", fmt.Errorf("no branches to choose from")
	}

	labels, current := branchOptions(branches)
	prompt := &survey.Select{
		Message:  message,
		Options:  labels,
		Default:  labels[current],
		PageSize: 15,
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrCanceled
		}
		return "", err
	}
	return branches[index].Name, nil
}
