package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lungbird/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func register(id, title string) {
	Register(ModeInfo{ID: id, Title: title, Summary: "stub " + id}, func() Game {
		return stubGame{id: id}
	})
}

func TestRegistryKeepsModesSorted(t *testing.T) {
	register("stub-c", "C")
	register("stub-a", "")
	register("stub-b", "B")

	var ids []string
	for _, m := range List() {
		ids = append(ids, m.ID)
	}
	want := []string{"stub-a", "stub-b", "stub-c"}
	if len(ids) != len(want) {
		t.Fatalf("List() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("List() = %v, want %v", ids, want)
		}
	}

	info, ok := Lookup("stub-a")
	if !ok || info.Title != "stub-a" || info.Summary != "stub stub-a" {
		t.Errorf("Lookup(stub-a) = %+v, %v; want the ID as title", info, ok)
	}
	if _, ok := Lookup("stub"); ok {
		t.Error("Lookup should not match a prefix")
	}

	g, err := Create("stub-b")
	if err != nil || g.ID() != "stub-b" {
		t.Errorf("Create(stub-b) = %v, %v", g, err)
	}
	if _, err := Create("missing"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Create(missing) error = %v, want ErrUnknownMode", err)
	}
	if !Exists("stub-c") || Exists("missing") {
		t.Error("Exists disagrees with the registrations")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	register("stub-dup", "Dup")
	defer func() {
		if recover() == nil {
			t.Error("registering an ID twice should panic")
		}
	}()
	register("stub-dup", "Dup")
}
