package intersection

import (
	"testing"
)

func TestClassifyTruthTable(t *testing.T) {
	tests := []struct {
		n, e, s, w bool
		want       Topology
	}{
		{false, false, false, false, Plaza},
		{true, false, false, false, DeadEnd},
		{false, true, false, false, DeadEnd},
		{false, false, true, false, DeadEnd},
		{false, false, false, true, DeadEnd},
		{true, false, true, false, Straight},
		{false, true, false, true, Straight},
		{true, true, false, false, Turn},
		{false, true, true, false, Turn},
		{false, false, true, true, Turn},
		{true, false, false, true, Turn},
		{true, true, true, false, TJunction},
		{false, true, true, true, TJunction},
		{true, false, true, true, TJunction},
		{true, true, false, true, TJunction},
		{true, true, true, true, FourWay},
	}
	if len(tests) != 16 {
		t.Fatalf("truth table has %d rows, want 16", len(tests))
	}
	for _, tt := range tests {
		got := Classify(tt.n, tt.e, tt.s, tt.w)
		if got != tt.want {
			t.Errorf("Classify(n=%v e=%v s=%v w=%v) = %s, want %s", tt.n, tt.e, tt.s, tt.w, got, tt.want)
		}
		c := NewConnections(tt.n, tt.e, tt.s, tt.w)
		if c.Topology() != tt.want {
			t.Errorf("Connections%v.Topology() = %s, want %s", c, c.Topology(), tt.want)
		}
	}
}

func TestTopologyString(t *testing.T) {
	want := map[Topology]string{
		Plaza:     "plaza",
		DeadEnd:   "dead-end",
		Straight:  "straight",
		Turn:      "turn",
		TJunction: "t-junction",
		FourWay:   "four-way",
	}
	for top, s := range want {
		if top.String() != s {
			t.Errorf("%d.String() = %q, want %q", int(top), top.String(), s)
		}
	}
}

func TestAdjacencyIsPerpendicular(t *testing.T) {
	for _, id := range AllCorners {
		a, b := AdjacentOf(id)
		if !Perpendicular(a, b) {
			t.Errorf("corner %s: adjacent sides %s and %s are not perpendicular", id, a, b)
		}
		got, err := CornerOf(a, b)
		if err != nil {
			t.Fatalf("CornerOf(%s, %s): %v", a, b, err)
		}
		if got != id {
			t.Errorf("CornerOf(%s, %s) = %s, want %s", a, b, got, id)
		}
		// Order of the two sides does not matter.
		got, err = CornerOf(b, a)
		if err != nil || got != id {
			t.Errorf("CornerOf(%s, %s) = %s, %v, want %s", b, a, got, err, id)
		}
	}
}

func TestCornerOfRejectsParallelSides(t *testing.T) {
	for _, s := range AllSides {
		if _, err := CornerOf(s, Opposite(s)); err == nil {
			t.Errorf("CornerOf(%s, %s) should fail", s, Opposite(s))
		}
		if _, err := CornerOf(s, s); err == nil {
			t.Errorf("CornerOf(%s, %s) should fail", s, s)
		}
	}
}

func TestSideEnds(t *testing.T) {
	tests := []struct {
		side        Side
		left, right CornerID
	}{
		{South, SW, SE},
		{East, SE, NE},
		{North, NE, NW},
		{West, NW, SW},
	}
	for _, tt := range tests {
		if got := CornerAtLeft(tt.side); got != tt.left {
			t.Errorf("CornerAtLeft(%s) = %s, want %s", tt.side, got, tt.left)
		}
		if got := CornerAtRight(tt.side); got != tt.right {
			t.Errorf("CornerAtRight(%s) = %s, want %s", tt.side, got, tt.right)
		}
	}
}

func TestParseSideAndCorner(t *testing.T) {
	sides := map[string]Side{"north": North, "N": North, "east": East, "s": South, "West": West}
	for in, want := range sides {
		got, err := ParseSide(in)
		if err != nil {
			t.Errorf("ParseSide(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseSide(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseSide("up"); err == nil {
		t.Error("ParseSide(\"up\") should fail")
	}

	for _, id := range AllCorners {
		got, err := ParseCorner(id.String())
		if err != nil || got != id {
			t.Errorf("ParseCorner(%q) = %s, %v", id.String(), got, err)
		}
	}
	if _, err := ParseCorner("middle"); err == nil {
		t.Error("ParseCorner(\"middle\") should fail")
	}
}

func TestConnectionsCount(t *testing.T) {
	c := NewConnections(true, false, true, false)
	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}
	if !c[North] || c[East] || !c[South] || c[West] {
		t.Errorf("NewConnections indexed wrongly: %v", [4]bool(c))
	}
}
