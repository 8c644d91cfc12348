// Package ui provides install progress feedback: an animated progress bar
// on interactive terminals, plain log lines otherwise.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressBar tracks category installation progress.
type ProgressBar interface {
	// Increment advances the progress by n steps.
	Increment(n int)

	// SetTitle updates the current step title.
	SetTitle(title string)

	// Done completes the bar at 100%.
	Done()
}

// NewProgressBar creates a progress bar with the given total steps. When
// interactive is false, output degrades to one log line per step on w.
func NewProgressBar(title string, total int, interactive bool, w io.Writer) ProgressBar {
	if !interactive {
		return &headlessBar{title: title, total: total, writer: w}
	}
	return newInteractiveBar(title, total)
}

// --- interactive bar (bubbletea) ---

type incrMsg int
type titleMsg string
type doneMsg struct{}

type barModel struct {
	bar     progress.Model
	title   string
	current int
	total   int
	done    bool
}

func newBarModel(title string, total int) barModel {
	return barModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		title: title,
		total: total,
	}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case incrMsg:
		m.current += int(msg)
		if m.current > m.total {
			m.current = m.total
		}
		return m, nil
	case titleMsg:
		m.title = string(msg)
		return m, nil
	case doneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m barModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return m.bar.ViewAs(pct) + fmt.Sprintf(" [%d/%d] %s\n", m.current, m.total, m.title)
}

type interactiveBar struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveBar(title string, total int) *interactiveBar {
	p := tea.NewProgram(newBarModel(title, total))
	b := &interactiveBar{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return b
}

func (b *interactiveBar) Increment(n int) {
	b.program.Send(incrMsg(n))
}

func (b *interactiveBar) SetTitle(title string) {
	b.program.Send(titleMsg(title))
}

func (b *interactiveBar) Done() {
	b.once.Do(func() {
		b.program.Send(doneMsg{})
		b.program.Wait()
	})
}

// --- headless bar ---

type headlessBar struct {
	title   string
	total   int
	current int
	writer  io.Writer
}

func (b *headlessBar) Increment(n int) {
	b.current += n
	if b.current > b.total {
		b.current = b.total
	}
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

func (b *headlessBar) SetTitle(title string) {
	b.title = title
}

func (b *headlessBar) Done() {
	b.current = b.total
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}
