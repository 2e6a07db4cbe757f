// Package tui renders a live table of currently-tracked aircraft. It is a
// pure consumer of decoded messages delivered over a channel: it never
// touches decoder state directly and can be detached without affecting
// any other sink.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Row is one line of the live table, refreshed as new messages arrive for
// that address.
type Row struct {
	ICAO24     string
	Callsign   string
	AltitudeFt int
	HasAlt     bool
	SpeedKts   int
	HasSpeed   bool
	LastSeen   time.Time
}

// Update carries one row's worth of new information for the table to
// merge into its state.
type Update struct {
	ICAO24     string
	Callsign   string
	AltitudeFt int
	HasAlt     bool
	SpeedKts   int
	HasSpeed   bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type updateMsg Update

type model struct {
	updates <-chan Update
	rows    map[string]*Row
}

// New builds a bubbletea model reading Update values from updates.
func New(updates <-chan Update) tea.Model {
	return model{updates: updates, rows: make(map[string]*Row)}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForUpdate(m.updates))
}

func waitForUpdate(updates <-chan Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return updateMsg(u)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tickMsg:
		return m, tick()
	case updateMsg:
		row, ok := m.rows[msg.ICAO24]
		if !ok {
			row = &Row{ICAO24: msg.ICAO24}
			m.rows[msg.ICAO24] = row
		}
		if msg.Callsign != "" {
			row.Callsign = msg.Callsign
		}
		if msg.HasAlt {
			row.AltitudeFt = msg.AltitudeFt
			row.HasAlt = true
		}
		if msg.HasSpeed {
			row.SpeedKts = msg.SpeedKts
			row.HasSpeed = true
		}
		row.LastSeen = time.Now()
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Background(lipgloss.Color("235")).Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	staleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("modes1090 — tracked aircraft"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %-9s %10s %8s %6s", "ICAO24", "CALLSIGN", "ALT (ft)", "SPD (kt)", "AGE")))
	b.WriteString("\n")

	rows := make([]*Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LastSeen.After(rows[j].LastSeen) })

	now := time.Now()
	for _, r := range rows {
		alt := "-"
		if r.HasAlt {
			alt = fmt.Sprintf("%d", r.AltitudeFt)
		}
		speed := "-"
		if r.HasSpeed {
			speed = fmt.Sprintf("%d", r.SpeedKts)
		}
		callsign := r.Callsign
		if callsign == "" {
			callsign = "--------"
		}
		age := now.Sub(r.LastSeen).Round(time.Second)
		line := fmt.Sprintf("%-8s %-9s %10s %8s %5s", r.ICAO24, callsign, alt, speed, age)
		if age > 30*time.Second {
			b.WriteString(staleStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(staleStyle.Render("q: quit"))
	return b.String()
}
