package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dialmenu/internal/config"
	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/interaction"
	"go.uber.org/zap"
)

const (
	defaultCols     = 60
	defaultRows     = 24
	statsWidth      = 40
	historyCapacity = 300

	// canvas origin inside the terminal, from canvasStyle's padding
	originCol = 2
	originRow = 1
)

type TickMsg time.Time

// Model is the Bubble Tea model driving one dial menu.
type Model struct {
	cfg      *config.Config
	menu     *dial.Menu
	logger   *zap.Logger
	canvas   *Canvas
	view     Viewport
	dt       float64
	interval time.Duration

	running   bool
	showLinks bool
	showHelp  bool
	pressed   bool
	energy    []float64
	lastErr   error

	paramKeys     []string
	initialParams map[string]float64
	selected      int
}

// NewModel builds the menu described by cfg and a canvas sized for a
// default terminal.
func NewModel(cfg *config.Config, logger *zap.Logger) (Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	menu, err := cfg.NewMenu(logger)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:       cfg,
		menu:      menu,
		logger:    logger,
		dt:        cfg.TickSeconds(),
		interval:  time.Duration(float64(time.Second) * cfg.TickSeconds()),
		running:   true,
		showLinks: true,
		energy:    make([]float64, 0, historyCapacity),
	}
	m.resize(defaultCols, defaultRows)
	m.loadParams()
	return m, nil
}

// loadParams snapshots the solver's tunable parameters, if it has any.
func (m *Model) loadParams() {
	m.paramKeys = nil
	m.initialParams = make(map[string]float64)
	m.selected = 0
	t, ok := m.menu.Solver().(dynamo.Configurable)
	if !ok {
		return
	}
	for k, v := range t.GetParams() {
		m.paramKeys = append(m.paramKeys, k)
		if v == 0 {
			v = 1e-6
		}
		m.initialParams[k] = v
	}
	sort.Strings(m.paramKeys)
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	t, ok := m.menu.Solver().(dynamo.Configurable)
	if !ok || len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := t.GetParams()[key] * factor
	t.SetParam(key, val)
	m.logger.Debug("solver parameter tuned", zap.String("param", key), zap.Float64("value", val))
}

func (m *Model) resize(cols, rows int) {
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}
	m.canvas = NewCanvas(cols, rows)
	extent := m.cfg.Radius + m.cfg.ItemSize/2*m.cfg.Inflate.MaxScale
	m.view = NewViewport(m.menu.Options().Center, extent, m.canvas.DotWidth(), m.canvas.DotHeight())
}

func (m Model) Menu() *dial.Menu   { return m.menu }
func (m Model) Canvas() *Canvas    { return m.canvas }
func (m Model) Viewport() Viewport { return m.view }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "l":
			m.showLinks = !m.showLinks
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-2*originCol-4, msg.Height-2*originRow-1)
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// mouse turns left-button activity on the canvas into pointer events.
func (m *Model) mouse(msg tea.MouseMsg) {
	p := m.view.CellToWorld(msg.X-originCol, msg.Y-originRow)

	var err error
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pressed = true
		err = m.menu.PointerDownAt(p)
	case msg.Action == tea.MouseActionMotion && m.pressed:
		err = m.menu.HandlePointer(interaction.Move(p))
	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		err = m.menu.HandlePointer(interaction.Up(p))
	default:
		return
	}
	if err != nil {
		m.lastErr = err
		m.logger.Warn("pointer event failed", zap.Error(err))
	}
}

func (m *Model) step() {
	if err := m.menu.Tick(m.dt); err != nil {
		m.lastErr = err
		m.running = false
		return
	}
	m.energy = append(m.energy, m.menu.Frame().Energy)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *Model) reset() {
	menu, err := m.cfg.NewMenu(m.logger)
	if err != nil {
		m.lastErr = err
		return
	}
	m.menu = menu
	m.loadParams()
	m.energy = m.energy[:0]
	m.lastErr = nil
	m.pressed = false
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()
	l := m.menu.Layout()
	if l == nil {
		return
	}

	for _, s := range l.Slots {
		x, y := m.view.ToDots(s)
		m.canvas.Set(x, y, colorMuted)
	}
	cx, cy := m.view.ToDots(l.Center)
	m.canvas.Set(cx, cy, colorMuted)

	f := m.menu.Frame()
	set := m.menu.Constraints()
	if m.showLinks && set.Installed() {
		for _, c := range set.Permanent() {
			if c.Kind != constraint.KindNeighbor {
				continue
			}
			ax, ay := m.view.ToDots(f.Items[c.Item].Position)
			bx, by := m.view.ToDots(f.Items[c.Other].Position)
			m.canvas.DrawLine(ax, ay, bx, by, colorLink)
		}
	}
	if d := set.Drag(); d != nil && d.Item < len(f.Items) {
		ax, ay := m.view.ToDots(f.Items[d.Item].Position)
		bx, by := m.view.ToDots(d.Target)
		m.canvas.DrawLine(ax, ay, bx, by, colorAccent)
	}

	for _, it := range f.Items {
		x, y := m.view.ToDots(it.Position)
		r := m.view.Length(it.Radius)
		m.canvas.FillCircle(x, y, r, it.Color.Hex())
		if it.State == interaction.Dragging || it.Snapping {
			m.canvas.DrawCircle(x, y, r+1, colorAccent)
		}
	}
}

func (m Model) View() string {
	if m.showHelp {
		return helpView
	}

	f := m.menu.Frame()
	var s strings.Builder
	s.WriteString(headerStyle.Render("DIAL MENU") + "\n")
	if m.running {
		s.WriteString(runningStyle.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Phase", f.Phase.String())
	row("Tick", fmt.Sprintf("%d", f.Tick))
	row("Solver", m.menu.Solver().Name())
	row("Pointer", fmt.Sprintf("%.0f, %.0f", f.Pointer.X, f.Pointer.Y))
	if d := m.menu.Constraints().Drag(); d != nil {
		if d.Phase == constraint.Snapping {
			row("Snap", fmt.Sprintf("item %d -> slot %d", d.Item, d.Slot))
		} else {
			row("Drag", fmt.Sprintf("item %d", d.Item))
		}
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if t, ok := m.menu.Solver().(dynamo.Configurable); ok && len(m.paramKeys) > 0 {
		s.WriteString("\nPARAMETERS\n")
		params := t.GetParams()
		for i, k := range m.paramKeys {
			val := params[k]
			barWidth, ratio := 10, val/(2.0*m.initialParams[k])
			ratio = math.Max(0, math.Min(1, ratio))
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-8s %s %.2f", k, bar, val)
			if i == m.selected {
				s.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + line + "\n")
			}
		}
	}

	s.WriteString("\nITEMS\n")
	for _, it := range f.Items {
		line := fmt.Sprintf("%s %d  x%.2f  %s", Swatch(it.Color.Hex()), it.Index, it.Scale, it.State)
		if it.State == interaction.Dragging {
			s.WriteString(activeStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.lastErr != nil {
		s.WriteString("\n" + errorStyle.Render(m.lastErr.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset L:Links\nTab/↑↓:Tune ?:Help Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.Render()),
		statsStyle.Render(s.String()))
}

const helpView = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Drag an item, release    ║
║             to snap it to a slot     ║
║  Space    - Pause/Resume             ║
║  R        - Rebuild and replay entry ║
║  L        - Toggle constraint links  ║
║  Tab      - Cycle spring parameter   ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run takes over the terminal until the user quits.
func Run(cfg *config.Config, logger *zap.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
