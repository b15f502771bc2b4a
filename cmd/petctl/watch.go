package main

import (
	"fmt"
	"strings"
	"time"

	"virtual-pet/internal/domain/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var watchStyles = struct {
	title   lipgloss.Style
	label   lipgloss.Style
	bar     lipgloss.Style
	low     lipgloss.Style
	message lipgloss.Style
	help    lipgloss.Style
}{
	title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF75B5")).Padding(0, 1),
	label:   lipgloss.NewStyle().Width(11),
	bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
	low:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	message: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#FFD75F")),
	help:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
}

type watchTickMsg time.Time

// watchModel acelera el reloj: cada tick real avanza speed de tiempo simulado.
type watchModel struct {
	pet     *simPet
	name    string
	now     time.Time
	speed   time.Duration
	tick    time.Duration
	message string
	paused  bool
}

func newWatchModel(pet *simPet, name string, start time.Time, speed, tick time.Duration) watchModel {
	return watchModel{pet: pet, name: name, now: start, speed: speed, tick: tick}
}

func (m watchModel) Init() tea.Cmd {
	return m.nextTick()
}

func (m watchModel) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		if !m.paused {
			m.now = m.now.Add(m.speed)
			if m.pet.advance(m.now) {
				m.message = m.name + " collapsed! Press r to revive."
			}
		}
		return m, m.nextTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "f":
			m.message = m.do(stats.ActionFeed, "You fed "+m.name+".")
		case "p":
			m.message = m.do(stats.ActionPlay, "You played with "+m.name+".")
		case "c":
			m.message = m.do(stats.ActionChat, "You chatted with "+m.name+".")
		case "r":
			res := m.pet.revive(m.now)
			m.message = res.Message
		}
	}
	return m, nil
}

func (m watchModel) do(a stats.Action, ok string) string {
	if err := m.pet.act(a, m.now); err != nil {
		return m.name + " can't do that while critical. Press r to revive."
	}
	return ok
}

func (m watchModel) View() string {
	s := m.pet.stats
	maxHealth := stats.EffectiveMaxHealth(m.pet.penalty)

	lines := []string{
		watchStyles.title.Render(fmt.Sprintf("%s  [%s]", m.name, m.pet.state())),
		m.now.Format("Mon 02 Jan 15:04 MST"),
		"",
		statBar("health", s.Health, maxHealth, false),
		statBar("hunger", s.Hunger, stats.MaxStat, true),
		statBar("happiness", s.Happiness, stats.MaxStat, false),
		statBar("energy", s.Energy, stats.MaxStat, false),
		"",
	}
	for _, w := range stats.Warnings(s, m.pet.critical) {
		lines = append(lines, watchStyles.low.Render("! "+w.Message))
	}
	if m.message != "" {
		lines = append(lines, watchStyles.message.Render(m.message))
	}
	lines = append(lines, "", watchStyles.help.Render("f feed • p play • c chat • r revive • space pause • q quit"))
	return strings.Join(lines, "\n") + "\n"
}

// statBar: para hunger un valor alto es malo.
func statBar(label string, v, limit int, higherIsWorse bool) string {
	const width = 20
	filled := 0
	if limit > 0 {
		filled = v * width / limit
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	bad := v <= 30
	if higherIsWorse {
		bad = v >= 70
	}
	style := watchStyles.bar
	if bad {
		style = watchStyles.low
	}
	return watchStyles.label.Render(label) + style.Render(bar) + fmt.Sprintf(" %3d", v)
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	var (
		name     string
		speed    time.Duration
		tick     time.Duration
		tzOffset int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactive pet in the terminal with an accelerated clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if speed < time.Minute {
				return fmt.Errorf("--speed must be >= 1m, got %s", speed)
			}
			engine, err := root.engine()
			if err != nil {
				return err
			}
			start := time.Now().Truncate(time.Minute)
			pet := newSimPet(engine, start, stats.Initial(), tzOffset)

			_, err = tea.NewProgram(newWatchModel(pet, name, start, speed, tick)).Run()
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "Mochi", "pet name")
	f.DurationVar(&speed, "speed", 30*time.Minute, "simulated time per tick (>= 1m)")
	f.DurationVar(&tick, "tick", 500*time.Millisecond, "real time between ticks")
	f.IntVar(&tzOffset, "tz-offset", 0, "pet timezone, minutes east of UTC")
	return cmd
}
