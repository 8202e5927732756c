package intersection

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Side is one edge of the rectangular site. The numeric order matters: side k
// is placed by a rotation of -90deg * k about Y.
type Side int

const (
	South Side = iota
	East
	North
	West
)

// AllSides lists the sides in placement order.
var AllSides = [4]Side{South, East, North, West}

func (s Side) String() string {
	switch s {
	case South:
		return "south"
	case East:
		return "east"
	case North:
		return "north"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Valid reports whether s is one of the four sides.
func (s Side) Valid() bool {
	return s >= South && s <= West
}

// ParseSide accepts full names ("north") and initials ("n"), case-insensitive.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "south", "s":
		return South, nil
	case "east", "e":
		return East, nil
	case "north", "n":
		return North, nil
	case "west", "w":
		return West, nil
	}
	return 0, errors.Newf("invalid side %q, expected north, east, south or west", name)
}

// CornerID names a rectangle corner. Corner k sits at the left end of side k.
type CornerID int

const (
	SW CornerID = iota
	SE
	NE
	NW
)

// AllCorners lists the corners in placement order.
var AllCorners = [4]CornerID{SW, SE, NE, NW}

func (c CornerID) String() string {
	switch c {
	case SW:
		return "sw"
	case SE:
		return "se"
	case NE:
		return "ne"
	case NW:
		return "nw"
	default:
		return fmt.Sprintf("CornerID(%d)", int(c))
	}
}

// Valid reports whether c is one of the four corners.
func (c CornerID) Valid() bool {
	return c >= SW && c <= NW
}

// ParseCorner accepts "sw", "se", "ne", "nw" in any case.
func ParseCorner(name string) (CornerID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sw":
		return SW, nil
	case "se":
		return SE, nil
	case "ne":
		return NE, nil
	case "nw":
		return NW, nil
	}
	return 0, errors.Newf("invalid corner %q, expected sw, se, ne or nw", name)
}

// adjacency is indexed by CornerID. The first side runs along the corner's
// local X axis, the second along its local Z axis.
var adjacency = [4][2]Side{
	SW: {South, West},
	SE: {East, South},
	NE: {North, East},
	NW: {West, North},
}

// AdjacentOf returns the two sides meeting at corner c.
func AdjacentOf(c CornerID) (Side, Side) {
	a := adjacency[c]
	return a[0], a[1]
}

// Opposite returns the side facing s across the site.
func Opposite(s Side) Side {
	return (s + 2) % 4
}

// Perpendicular reports whether a and b meet at a corner.
func Perpendicular(a, b Side) bool {
	return a.Valid() && b.Valid() && a != b && Opposite(a) != b
}

// CornerOf returns the corner where sides a and b meet, in either order.
// Passing parallel or identical sides is a programming error.
func CornerOf(a, b Side) (CornerID, error) {
	if !Perpendicular(a, b) {
		return 0, errors.AssertionFailedf("sides %s and %s do not meet at a corner", a, b)
	}
	for _, c := range AllCorners {
		x, z := AdjacentOf(c)
		if (x == a && z == b) || (x == b && z == a) {
			return c, nil
		}
	}
	return 0, errors.AssertionFailedf("no corner for sides %s and %s", a, b)
}

// MustCornerOf is CornerOf for callers that already know the sides are
// perpendicular. It panics otherwise.
func MustCornerOf(a, b Side) CornerID {
	c, err := CornerOf(a, b)
	if err != nil {
		panic(err)
	}
	return c
}

// CornerAtLeft returns the corner at the left end (local x = 0) of side s.
func CornerAtLeft(s Side) CornerID {
	return CornerID(s)
}

// CornerAtRight returns the corner at the right end (local x = edge length)
// of side s.
func CornerAtRight(s Side) CornerID {
	return CornerID((s + 1) % 4)
}

// ---------------------------------------------------------------------------
// Topology classification
// ---------------------------------------------------------------------------

// Topology is the street-junction shape implied by the connection flags.
// It is advisory: geometry is driven by the per-side flags directly.
type Topology int

const (
	Plaza    Topology = iota // no roads
	DeadEnd                  // one road
	Straight                 // two opposite roads (I)
	Turn                     // two adjacent roads (L)
	TJunction                // three roads (T)
	FourWay                  // four roads (X)
)

func (t Topology) String() string {
	switch t {
	case Plaza:
		return "plaza"
	case DeadEnd:
		return "dead-end"
	case Straight:
		return "straight"
	case Turn:
		return "turn"
	case TJunction:
		return "t-junction"
	case FourWay:
		return "four-way"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Classify maps the four connection flags to a Topology.
func Classify(n, e, s, w bool) Topology {
	cnt := 0
	for _, c := range []bool{n, e, s, w} {
		if c {
			cnt++
		}
	}
	switch cnt {
	case 0:
		return Plaza
	case 1:
		return DeadEnd
	case 2:
		if (n && s) || (e && w) {
			return Straight
		}
		return Turn
	case 3:
		return TJunction
	default:
		return FourWay
	}
}

// Connections holds one flag per side, indexed by Side.
type Connections [4]bool

// NewConnections builds Connections from compass-order flags.
func NewConnections(n, e, s, w bool) Connections {
	var c Connections
	c[North], c[East], c[South], c[West] = n, e, s, w
	return c
}

// Topology classifies the connections.
func (c Connections) Topology() Topology {
	return Classify(c[North], c[East], c[South], c[West])
}

// Count returns the number of connected sides.
func (c Connections) Count() int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

func (c Connections) String() string {
	var parts []string
	for _, s := range []Side{North, East, South, West} {
		if c[s] {
			parts = append(parts, s.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c CornerID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CornerID) UnmarshalText(b []byte) error {
	v, err := ParseCorner(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
