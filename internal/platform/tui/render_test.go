package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/lungbird/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score", core.ColorBrightWhite)
	s.DrawText(6, 0, "42", core.ColorBrightYellow)
	s.SetColored(0, 2, '█', core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "Score") || !strings.Contains(lines[0], "42") {
		t.Errorf("first line = %q, want the drawn text", lines[0])
	}
	if !strings.Contains(lines[2], "█") {
		t.Errorf("last line = %q, want the block", lines[2])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q, want plain text", got)
	}
}
