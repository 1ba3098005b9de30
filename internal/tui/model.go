// Package tui is a terminal consumer of the record container: it
// subscribes to state emissions, renders them, and turns key presses
// into dispatched events. Display logic only; every business rule
// lives behind the container.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luke-tf/finanapp/internal/container"
	"github.com/luke-tf/finanapp/internal/model"
	"github.com/luke-tf/finanapp/internal/service"
)

// stateMsg wraps one container emission for the bubbletea loop.
type stateMsg struct {
	state container.State
}

// streamClosedMsg means the container shut down.
type streamClosedMsg struct{}

// Model is the bubbletea model. It tracks the latest container state
// plus purely presentational concerns (cursor, search input, spinner).
type Model struct {
	c           *container.Container
	state       container.State
	search      textinput.Model
	spinner     spinner.Model
	lastMessage string
	cursor      int
	width       int
	searching   bool
	quitting    bool
}

// New creates the TUI model for a container whose Run loop is already
// started.
func New(c *container.Container) Model {
	search := textinput.New()
	search.Placeholder = "search titles…"
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		c:       c,
		state:   container.Initial{},
		search:  search,
		spinner: sp,
	}
}

// waitForState blocks on the next container emission.
func waitForState(c *container.Container) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-c.States()
		if !ok {
			return streamClosedMsg{}
		}
		return stateMsg{state: s}
	}
}

// Init subscribes to the emission stream and requests the first load.
func (m Model) Init() tea.Cmd {
	m.c.Dispatch(container.Load{})
	return tea.Batch(m.spinner.Tick, waitForState(m.c))
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		m.state = msg.state
		if success, ok := msg.state.(container.OperationSucceeded); ok {
			m.lastMessage = success.Message
		}
		if loaded, ok := msg.state.(container.Loaded); ok {
			if limit := len(loaded.Visible()) - 1; m.cursor > limit {
				m.cursor = max(limit, 0)
			}
		}
		return m, waitForState(m.c)

	case streamClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.c.Dispatch(container.Search{Query: m.search.Value()})
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.c.Dispatch(container.Refresh{})
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "e":
		expenses := true
		m.c.Dispatch(container.FilterByType{IsExpense: &expenses})
	case "i":
		income := false
		m.c.Dispatch(container.FilterByType{IsExpense: &income})
	case "a":
		m.search.SetValue("")
		m.c.Dispatch(container.ClearFilters{})
	case "d":
		if rec, ok := m.selected(); ok {
			m.c.Dispatch(container.Delete{ID: rec.ID})
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if loaded, ok := m.state.(container.Loaded); ok && m.cursor < len(loaded.Visible())-1 {
			m.cursor++
		}
	}

	return m, nil
}

// selected returns the record under the cursor, if any.
func (m Model) selected() (model.FinanceRecord, bool) {
	loaded, ok := m.state.(container.Loaded)
	if !ok {
		return model.FinanceRecord{}, false
	}
	visible := loaded.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.FinanceRecord{}, false
	}
	return visible[m.cursor], true
}

// View renders the latest container state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	out := titleStyle.Render("finanapp") + "\n"

	switch s := m.state.(type) {
	case container.Initial, container.Loading:
		out += m.spinner.View() + " loading records…\n"

	case container.Failed:
		out += errorStyle.Render("✗ "+s.Err.Message) + "\n"
		if len(s.Records) > 0 {
			out += subtleStyle.Render("showing last known records") + "\n"
			out += m.renderRecords(s.Records)
		}
		out += helpStyle.Render("r refresh · q quit")

	case container.OperationSucceeded:
		out += successStyle.Render("✓ "+s.Message) + "\n"
		out += m.renderRecords(s.Records)

	case container.Loaded:
		out += m.renderLoaded(s)
	}

	return out
}

func (m Model) renderLoaded(s container.Loaded) string {
	var out string

	if m.lastMessage != "" {
		out += successStyle.Render("✓ "+m.lastMessage) + "\n"
	}
	if s.InFlight.Any() {
		out += m.spinner.View() + " working…\n"
	}
	if m.searching {
		out += m.search.View() + "\n"
	} else if s.Filter.Active() {
		out += subtleStyle.Render(describeFilter(s.Filter)) + "\n"
	}

	out += m.renderRecords(s.Visible())
	out += m.renderSummary(s.Records)
	out += helpStyle.Render("↑/↓ move · d delete · / search · e/i/a filter · r refresh · q quit")
	return out
}

func (m Model) renderRecords(records []model.FinanceRecord) string {
	if len(records) == 0 {
		return subtleStyle.Render("no records") + "\n"
	}

	var out string
	for i, r := range records {
		amount := incomeStyle.Render("+" + r.Amount.StringFixed(2))
		if r.IsExpense {
			amount = expenseStyle.Render("-" + r.Amount.StringFixed(2))
		}
		line := fmt.Sprintf("%-30s %12s  %s",
			truncate(r.Title, 30), amount, r.OccurredAt.Format("2006-01-02"))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		out += line + "\n"
	}
	return out
}

func (m Model) renderSummary(records []model.FinanceRecord) string {
	summary := service.Summarize(records)
	balance := summary.Balance.StringFixed(2)

	var styled string
	switch service.BalanceIndicatorFor(summary.Balance) {
	case model.BalancePositive:
		styled = incomeStyle.Render(balance)
	case model.BalanceNegative:
		styled = expenseStyle.Render(balance)
	default:
		styled = neutralStyle.Render(balance)
	}

	return fmt.Sprintf("\nincome %s · expenses %s · balance %s\n",
		summary.Income.StringFixed(2), summary.Expenses.StringFixed(2), styled)
}

func describeFilter(f model.RecordFilter) string {
	out := "filter:"
	if f.Query != "" {
		out += fmt.Sprintf(" %q", f.Query)
	}
	if f.From != nil && f.To != nil {
		out += fmt.Sprintf(" %s–%s", f.From.Format("2006-01-02"), f.To.Format("2006-01-02"))
	}
	if f.IsExpense != nil {
		if *f.IsExpense {
			out += " expenses"
		} else {
			out += " income"
		}
	}
	return out + " (a clears)"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
