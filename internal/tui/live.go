// Package tui implements the live solver view: a Bubble Tea program that
// watches a solve iterate, charts the shrinking update norm, and shows the
// trajectory once the solve lands.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MoniFarsang/deer/internal/deer"
	"github.com/MoniFarsang/deer/internal/state"
	"github.com/MoniFarsang/deer/internal/viz"
)

const (
	chartWidth  = 70
	chartHeight = 8
	frameEvery  = time.Second / 12
)

// Outcome is what the view reports once the solve finishes, widened to
// float64 for display.
type Outcome struct {
	Y         *state.Seq[float64]
	Iters     int
	Delta     float64
	Converged bool
}

// Solver runs one solve under the given observer. The view invokes it on
// its own goroutine exactly once.
type Solver func(deer.Observer) (Outcome, error)

// Watcher forwards iteration updates into the view. Sends never block the
// solver: updates the view cannot keep up with are dropped, which only
// thins the chart.
type Watcher struct {
	ch chan tea.Msg
}

func (w Watcher) OnIteration(iter int, delta float64) {
	select {
	case w.ch <- progressMsg{iter: iter, delta: delta}:
	default:
	}
}

type (
	progressMsg struct {
		iter  int
		delta float64
	}
	doneMsg struct {
		out Outcome
		err error
	}
	frameMsg time.Time
)

// Model is the Bubble Tea model of the live view.
type Model struct {
	name   string
	labels []string
	solve  Solver
	events chan tea.Msg
	start  time.Time

	iter    int
	delta   float64
	deltas  []float64
	elapsed time.Duration
	frame   int
	out     *Outcome
	err     error
}

func NewModel(name string, labels []string, solve Solver) Model {
	return Model{
		name:   name,
		labels: labels,
		solve:  solve,
		events: make(chan tea.Msg, 256),
		start:  time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(), listen(m.events), frameTick())
}

// run executes the solve and delivers its outcome as a message.
func (m Model) run() tea.Cmd {
	return func() tea.Msg {
		out, err := m.solve(Watcher{ch: m.events})
		return doneMsg{out: out, err: err}
	}
}

func listen(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func frameTick() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.iter = msg.iter
		m.delta = msg.delta
		m.deltas = append(m.deltas, msg.delta)
		return m, listen(m.events)

	case doneMsg:
		m.out = &msg.out
		m.err = msg.err
		m.elapsed = time.Since(m.start)
		if m.err == nil {
			m.iter = m.out.Iters
			m.delta = m.out.Delta
		}
		return m, nil

	case frameMsg:
		if m.out != nil || m.err != nil {
			return m, nil
		}
		m.frame++
		m.elapsed = time.Since(m.start)
		return m, frameTick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(viz.Header.Render(strings.ToUpper(m.name)) + "\n")

	switch {
	case m.err != nil:
		b.WriteString(viz.Warn.Render("FAILED") + "\n\n")
		b.WriteString(viz.Warn.Render(m.err.Error()) + "\n")
	case m.out != nil:
		b.WriteString(viz.Status(m.out.Converged) + "\n\n")
	default:
		b.WriteString(viz.Spinner(m.frame) + " solving\n\n")
	}

	b.WriteString(viz.Label.Render("iterations") + viz.Value.Render(fmt.Sprintf("%d", m.iter)) + "\n")
	b.WriteString(viz.Label.Render("delta") + viz.Value.Render(fmt.Sprintf("%.3e", m.delta)) + "\n")
	b.WriteString(viz.Label.Render("elapsed") + viz.Value.Render(m.elapsed.Round(time.Millisecond).String()) + "\n")

	if len(m.deltas) > 1 {
		b.WriteString("\n" + viz.Graph.Render(viz.ConvergenceChart(m.deltas, chartWidth, chartHeight)) + "\n")
	}
	if m.out != nil && m.err == nil {
		b.WriteString("\n" + viz.SolutionChart(m.out.Y, m.labels, chartWidth, chartHeight) + "\n")
	}

	b.WriteString(viz.Help.Render("\nq: quit"))
	return b.String()
}

// Run drives the live view until the user quits.
func Run(name string, labels []string, solve Solver) error {
	p := tea.NewProgram(NewModel(name, labels, solve))
	_, err := p.Run()
	return err
}
