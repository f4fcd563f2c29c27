package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lungbird/internal/core"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	view := m.View()
	for _, title := range []string{"Lungbird", "Lungbird (bounded)"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu should list %q:\n%s", title, view)
		}
	}

	if !strings.Contains(view, "Only obstacles end a run") {
		t.Errorf("menu should describe the selected mode:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(next.View(), "Leaving the sky ends a run too") {
		t.Errorf("menu should describe the bounded mode:\n%s", next.View())
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().ModeID != lungbird.ModeBounded {
		t.Errorf("Selected() = %+v, want bounded mode", menu.Selected())
	}
}

func TestMenuShowsRunCounts(t *testing.T) {
	store := openTestStore(t)
	gm, _ := newTestModel(t, lungbird.ModeBounded, store)
	gm, _ = send(t, gm, space)
	tickUntilOver(t, gm)

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if !strings.Contains(m.View(), "(1 runs)") {
		t.Errorf("menu should show the run count:\n%s", m.View())
	}
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(Deps{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatalf("enter should open a game, screen = %d", m.current)
	}
	m = sendSession(t, m, TickMsg{Gen: m.game.gen})
	if !strings.Contains(m.View(), "TAP TO PLAY") {
		t.Errorf("game view should show the idle prompt:\n%s", m.View())
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %d", m.current)
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenRuns {
		t.Fatalf("tab should open the run history, screen = %d", m.current)
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("runs view without a journal should be empty:\n%s", m.View())
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("esc should leave the run history, screen = %d", m.current)
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.quitting || m.View() != "" {
		t.Error("q should end the session")
	}
}

func TestRunsModelVerifiesSelectedRun(t *testing.T) {
	store := openTestStore(t)
	gm, _ := newTestModel(t, lungbird.ModeClassic, store)
	gm, _ = send(t, gm, space)
	tickUntilOver(t, gm)

	m := NewRunsModel(store, 100, 30)
	if len(m.runs) != 1 {
		t.Fatalf("loaded %d runs, want 1", len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(RunsModel)
	if !strings.Contains(m.status, "verified") {
		t.Errorf("status = %q, want a verified run", m.status)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if len(m.runs) != 0 || m.status != "" {
		t.Errorf("bounded mode should have no runs, got %d (status %q)", len(m.runs), m.status)
	}
}

func TestFormatPlayTime(t *testing.T) {
	if got := formatPlayTime(90, 60); got != "1.5s" {
		t.Errorf("formatPlayTime(90, 60) = %q, want 1.5s", got)
	}
	if got := formatPlayTime(120, 0); got != "2s" {
		t.Errorf("formatPlayTime(120, 0) = %q, want 2s", got)
	}
}

func TestSessionDropsTicksOfLeftGame(t *testing.T) {
	m := NewSessionModel(Deps{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	left := m.game.gen
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatalf("enter should open a game, screen = %d", m.current)
	}

	next, cmd := m.Update(TickMsg{Gen: left})
	m = next.(SessionModel)
	if cmd != nil {
		t.Error("a tick of the left game should not start a second tick chain")
	}
	if got := m.game.game.Frame(); got != 0 {
		t.Errorf("Frame() = %d after a stale tick, want 0", got)
	}
}
