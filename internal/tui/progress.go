// internal/tui/progress.go
// Package tui renders a live progress view for benchmark runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/simplebench/internal/benchmark"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	passedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// QuestionMsg reports one scored question.
type QuestionMsg benchmark.Progress

// DoneMsg reports the final score once every question is scored.
type DoneMsg struct {
	Score float64
}

// ErrMsg reports a run-aborting error.
type ErrMsg struct {
	Err error
}

// Model is the bubbletea model for the benchmark progress view.
type Model struct {
	spinner   spinner.Model
	modelName string
	total     int
	completed int
	passed    int
	score     float64
	done      bool
	quitting  bool
	err       error
}

// New constructs the progress view for a run over total questions.
func New(modelName string, total int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		spinner:   s,
		modelName: modelName,
		total:     total,
	}
}

// Init starts the spinner animation.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles run progress messages and user keystrokes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case QuestionMsg:
		m.completed = msg.Index
		if msg.Passed {
			m.passed++
		}
		m.score = msg.Score
		return m, nil
	case DoneMsg:
		m.done = true
		m.score = msg.Score
		return m, tea.Quit
	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current run state.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Benchmarking %s", m.modelName)) + "\n")

	if m.err != nil {
		b.WriteString(failedStyle.Render(fmt.Sprintf("Run aborted: %v", m.err)) + "\n")
		return b.String()
	}

	failed := m.completed - m.passed
	tally := fmt.Sprintf("%s  %s",
		passedStyle.Render(fmt.Sprintf("%d passed", m.passed)),
		failedStyle.Render(fmt.Sprintf("%d failed", failed)))

	if m.done {
		b.WriteString(fmt.Sprintf("Completed %d/%d questions  %s\n", m.completed, m.total, tally))
		b.WriteString(titleStyle.Render(fmt.Sprintf("Final Score: %.1f%%", m.score)) + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s Question %d/%d  %s\n", m.spinner.View(), m.completed+1, m.total, tally))
	b.WriteString(mutedStyle.Render("press q to abort") + "\n")
	return b.String()
}

// Interrupted reports whether the user quit before the run finished.
func (m Model) Interrupted() bool {
	return m.quitting && !m.done && m.err == nil
}

// Err returns the run-aborting error, if any.
func (m Model) Err() error {
	return m.err
}
