package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mazegen/internal/carver"
	"github.com/san-kum/mazegen/internal/config"
	"github.com/san-kum/mazegen/internal/grid"
	"github.com/san-kum/mazegen/internal/placement"
	"github.com/san-kum/mazegen/internal/pool"
	"github.com/san-kum/mazegen/internal/scheduler"
	"github.com/san-kum/mazegen/internal/stats"
)

const historyCapacity = 600

var (
	mazeStyle   = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// progressTap collects build-progress samples from the scheduler callback.
// It lives behind a pointer so the bubbletea value model sees updates.
type progressTap struct {
	history []float64
}

// Model owns the scheduler, the instance pool and the UI state for the live
// view. One generation slice runs per animation frame.
type Model struct {
	cfg   *config.Config
	sched *scheduler.Scheduler
	pool  *pool.Pool
	names []string

	carverIdx int
	themeName string
	seed      int64

	tap      *progressTap
	solution []grid.Point
	warnings []string

	running  bool
	showPath bool
	showHelp bool
	err      error
}

// NewModel wires a pool of terminal tiles to a fresh scheduler and submits
// the first generation request from the config.
func NewModel(cfg *config.Config) (Model, error) {
	p, err := pool.New(pool.Callbacks{
		Create: func(pool.Role) pool.Visual { return NewTermTile() },
		Reset:  func(v pool.Visual) { v.Reset() },
	})
	if err != nil {
		return Model{}, err
	}
	p.Warm(pool.RoleWall, cfg.Pool.WarmWalls)
	p.Warm(pool.RoleFloor, cfg.Pool.WarmFloors)

	sched := scheduler.New(p, scheduler.Options{
		CarveOpsPerStep:   cfg.Steps.CarveOps,
		BuildCellsPerStep: cfg.Steps.BuildCells,
	})
	tap := &progressTap{}
	sched.OnProgress(func(f float64) {
		tap.history = append(tap.history, f)
		if len(tap.history) > historyCapacity {
			tap.history = tap.history[1:]
		}
	})

	reg := carver.NewRegistry()
	names := reg.List()
	idx := 0
	for i, n := range names {
		if n == cfg.Carver {
			idx = i
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	m := Model{
		cfg:       cfg,
		sched:     sched,
		pool:      p,
		names:     names,
		carverIdx: idx,
		themeName: cfg.Theme,
		seed:      seed,
		tap:       tap,
		running:   true,
	}
	if err := m.generate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the generation by one slice.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.pool.Close()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.seed = rand.Int63()
			m.err = m.generate()
		case "n":
			m.carverIdx = (m.carverIdx + 1) % len(m.names)
			m.err = m.generate()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == m.themeName {
					m.themeName = names[(i+1)%len(names)]
					break
				}
			}
			SetTheme(m.themeName)
			m.err = m.generate()
		case "+", "=":
			m.cfg.Width += 10
			m.cfg.Height += 6
			m.err = m.generate()
		case "-", "_":
			if m.cfg.Width > 13 && m.cfg.Height > 9 {
				m.cfg.Width -= 10
				m.cfg.Height -= 6
				m.err = m.generate()
			}
		case "s":
			m.showPath = !m.showPath
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			wasBusy := m.sched.IsGenerating()
			if _, err := m.sched.Step(); err != nil {
				m.err = err
			}
			m.tickTiles()
			if wasBusy && !m.sched.IsGenerating() {
				if m.sched.Placed() {
					m.solution = stats.Solve(m.sched.Grid(), m.sched.StartPoint(), m.sched.EndPoint())
				}
				m.warnings = m.sched.Warnings()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// generate submits a fresh request, preempting any run in flight.
func (m *Model) generate() error {
	reg := carver.NewRegistry()
	c, err := reg.Get(m.names[m.carverIdx])
	if err != nil {
		return err
	}

	th := GetTheme(m.themeName)
	place := placement.Request{AutoPlace: m.cfg.AutoPlace}
	if m.cfg.Start != nil {
		place.Start = &grid.Point{X: m.cfg.Start.X, Y: m.cfg.Start.Y}
	}
	if m.cfg.End != nil {
		place.End = &grid.Point{X: m.cfg.End.X, Y: m.cfg.End.Y}
	}

	m.solution = nil
	m.warnings = nil
	m.tap.history = m.tap.history[:0]
	return m.sched.Generate(scheduler.Request{
		Width:  m.cfg.Width,
		Height: m.cfg.Height,
		Seed:   m.seed,
		Carver: c,
		Braid:  m.cfg.Braiding,
		Place:  place,
		Wall:   pool.Color(th.Wall),
		Floor:  pool.Color(th.Floor),
		Hidden: pool.Color(th.Hidden),
		Start:  pool.Color(th.Start),
		End:    pool.Color(th.End),
	})
}

// tickTiles advances every owned tile's fade, retirees and markers
// included. Retirees must keep animating or the build phase would wait on
// their idle predicate forever.
func (m *Model) tickTiles() {
	m.sched.EachVisual(func(v pool.Visual) {
		if t, ok := v.(*TermTile); ok {
			t.Tick()
		}
	})
}

// View renders the maze next to the stats panel.
func (m Model) View() string {
	mazeView := mazeStyle.Render(m.renderMaze())

	var s strings.Builder
	s.WriteString(headerStyle.Render("MAZEGEN") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.tap.history) > 1 {
		chart := asciigraph.Plot(m.tap.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Build progress"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(m.sched.Phase().String()) + "\n")
	s.WriteString(labelStyle.Render("Size") + valueStyle.Render(fmt.Sprintf("%dx%d", m.cfg.Width, m.cfg.Height)) + "\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.seed)) + "\n")
	s.WriteString(labelStyle.Render("Carver") + valueStyle.Render(m.names[m.carverIdx]) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.themeName) + "\n")
	s.WriteString(labelStyle.Render("Progress") + ProgressBar(m.sched.Progress(), 20) + "\n\n")

	s.WriteString(MetricLabel.Render("POOL") + "\n")
	s.WriteString(labelStyle.Render("In use") + MetricValue.Render(fmt.Sprintf("%d", m.pool.Outstanding())) + "\n")
	s.WriteString(labelStyle.Render("Created") + MetricValue.Render(fmt.Sprintf("%d", m.pool.Created())) + "\n")
	s.WriteString(labelStyle.Render("Retiring") + MetricValue.Render(fmt.Sprintf("%d", m.sched.PendingRetire())) + "\n")

	if m.solution != nil {
		s.WriteString("\n" + labelStyle.Render("Solution") + valueStyle.Render(fmt.Sprintf("%d cells", len(m.solution))) + "\n")
	}
	for _, w := range m.warnings {
		s.WriteString(StatusPaused.Render("! ") + Subtle.Render(w) + "\n")
	}
	if m.err != nil {
		s.WriteString(StatusPaused.Render("! ") + Subtle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause R:Reroll Q:Quit\nN:Carver T:Theme S:Path\n+/-:Size ?:Help"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, mazeView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume frames      ║
║  R        - Regenerate, fresh seed   ║
║  N        - Cycle carving algorithm  ║
║  T        - Cycle color theme        ║
║  S        - Toggle solution overlay  ║
║  +/-      - Grow/shrink the maze     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// renderMaze paints every cell from its pooled tile. Cells not yet
// materialized take the hidden color, so a half-built maze shows the carve
// front sweeping down the grid.
func (m Model) renderMaze() string {
	g := m.sched.Grid()
	if g == nil {
		return Subtle.Render("no maze yet")
	}
	th := GetTheme(m.themeName)

	colors := make(map[grid.Point]pool.Color, len(m.sched.Active()))
	for _, h := range m.sched.Active() {
		if t, ok := h.Visual.(*TermTile); ok {
			colors[grid.Point{X: h.X, Y: h.Y}] = t.Color()
		}
	}

	styles := make(map[pool.Color]lipgloss.Style)
	styleFor := func(c pool.Color) lipgloss.Style {
		st, ok := styles[c]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
			styles[c] = st
		}
		return st
	}
	hidden := styleFor(pool.Color(th.Hidden))
	startStyle := lipgloss.NewStyle().Foreground(th.Start).Bold(true)
	endStyle := lipgloss.NewStyle().Foreground(th.End).Bold(true)
	pathStyle := lipgloss.NewStyle().Foreground(th.Accent)

	onPath := make(map[grid.Point]bool)
	if m.showPath {
		for _, p := range m.solution {
			onPath[p] = true
		}
	}

	done := !m.sched.IsGenerating() && m.sched.Placed()
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pt := grid.Point{X: x, Y: y}
			switch {
			case done && pt == m.sched.StartPoint():
				b.WriteString(startStyle.Render("◉ "))
			case done && pt == m.sched.EndPoint():
				b.WriteString(endStyle.Render("◎ "))
			case onPath[pt]:
				b.WriteString(pathStyle.Render("··"))
			default:
				c, ok := colors[pt]
				if !ok {
					b.WriteString(hidden.Render("██"))
					continue
				}
				b.WriteString(styleFor(c).Render("██"))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Run starts the live view in the alternate screen.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
