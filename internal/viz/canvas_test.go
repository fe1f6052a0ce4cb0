package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2800|0x1|0x80 {
		t.Errorf("expected both dots set, got %U", c.Grid[0][0])
	}

	// out of bounds is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != 0x2800 {
		t.Errorf("expected empty cell, got %U", c.Grid[0][1])
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected cleared cell, got %U", c.Grid[0][0])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)

	for col, r := range c.Grid[0] {
		if r != 0x2800|0x1|0x8 {
			t.Errorf("col %d: expected top row set, got %U", col, r)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if n := len([]rune(lines[0])); n != 3 {
		t.Errorf("expected 3 runes, got %d", n)
	}
}

func TestViewport(t *testing.T) {
	c := NewCanvas(40, 20)
	v := NewViewport(c, 3)

	x, y := v.Project(0, 0)
	if x != 40 || y != 40 {
		t.Errorf("expected pivot at (40, 40), got (%d, %d)", x, y)
	}

	// full reach straight down stays on the canvas
	_, y = v.Project(0, -3)
	if y < 0 || y >= 80 {
		t.Errorf("bob outside canvas: y=%d", y)
	}
	if y <= 40 {
		t.Errorf("negative world y should map below the pivot, got %d", y)
	}
}
