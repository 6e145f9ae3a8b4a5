package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dialmenu/internal/config"
	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/interaction"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset("rigid")
	cfg.Entry.Duration = 0
	m, err := NewModel(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// cellOf returns the terminal cell that maps onto the centre of item i.
func cellOf(m Model, i int) (int, int) {
	x, y := m.Viewport().ToDots(m.Menu().Items()[i].Position)
	return x/2 + originCol, y/4 + originRow
}

func TestModel_TickAdvances(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))
	if m.Menu().Frame().Tick != 1 {
		t.Errorf("expected one tick, got %d", m.Menu().Frame().Tick)
	}
	if m.Menu().Phase() != dial.PhaseInteractive {
		t.Errorf("zero entry duration should start interactive, got %s", m.Menu().Phase())
	}
}

func TestModel_PauseStopsTicking(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg(time.Now()))
	if m.Menu().Frame().Tick != 0 {
		t.Errorf("paused model should not tick, got %d", m.Menu().Frame().Tick)
	}
}

func TestModel_MouseDrag(t *testing.T) {
	m := newTestModel(t)
	col, row := cellOf(m, 0)

	m = update(t, m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Menu().State(0) != interaction.Dragging {
		t.Fatalf("press on item 0 should start a drag, got %s", m.Menu().State(0))
	}

	m = update(t, m, tea.MouseMsg{X: col + 3, Y: row + 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	target := m.Menu().Constraints().Drag().Target
	if target == m.Menu().Layout().Slots[0] {
		t.Error("motion should retarget the drag")
	}

	m = update(t, m, tea.MouseMsg{X: col + 3, Y: row + 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Menu().State(0) != interaction.Idle {
		t.Errorf("release should end the drag, got %s", m.Menu().State(0))
	}
	if d := m.Menu().Constraints().Drag(); d == nil || d.Phase.String() != "snapping" {
		t.Errorf("release should leave a snap constraint, got %+v", d)
	}
}

func TestModel_MotionWithoutPressIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionMotion})
	if m.Menu().Constraints().Drag() != nil {
		t.Error("hover must not create a drag")
	}
}

func TestModel_ResetRebuildsMenu(t *testing.T) {
	m := newTestModel(t)
	before := m.Menu()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.Menu() == before {
		t.Error("reset should build a new menu")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, TickMsg(time.Now()))

	out := m.View()
	for _, want := range []string{"DIAL MENU", "interactive", "rigid", "ITEMS"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help toggle should show shortcuts")
	}
}

func TestModel_TuneSpring(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Entry.Duration = 0
	m, err := NewModel(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	tun := m.Menu().Solver().(dynamo.Configurable)
	before := tun.GetParams()["damping"]

	// keys sort as damping, k
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := tun.GetParams()["damping"]; got <= before {
		t.Errorf("up should raise damping, got %f from %f", got, before)
	}

	k := tun.GetParams()["k"]
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := tun.GetParams()["k"]; got >= k {
		t.Errorf("down should lower k, got %f from %f", got, k)
	}
	if !strings.Contains(m.View(), "PARAMETERS") {
		t.Error("spring solver should list its parameters")
	}
}
