package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type bookingDoneMsg struct {
	outcome domain.Outcome
	err     error
}

type pollSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	outcome domain.Outcome
	err     error
	done    bool
}

func newPollSpinnerModel(label string, run tea.Cmd) pollSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return pollSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m pollSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m pollSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case bookingDoneMsg:
		m.done = true
		m.outcome = msg.outcome
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m pollSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runPollSpinner shows label on output until run returns.
func runPollSpinner(ctx context.Context, output io.Writer, label string, run func(context.Context) (domain.Outcome, error)) (domain.Outcome, error) {
	runCmd := func() tea.Msg {
		outcome, err := run(ctx)
		return bookingDoneMsg{outcome: outcome, err: err}
	}

	p := tea.NewProgram(
		newPollSpinnerModel(label, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.Outcome{}, err
	}

	result, ok := finalModel.(pollSpinnerModel)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.outcome, result.err
}

// syncWriter serializes writes from the spinner, the logger and the 3DS server.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
