package rules

import (
	"fmt"

	"github.com/nstehr/brood/world"
)

// Command is one independent piece of decision logic. ShouldHandle must not
// issue orders; it may remember what it selected so Handle can reuse it in
// the same step. Handle reports whether it issued anything, for logs only.
type Command interface {
	Name() string
	ShouldHandle(s *world.Snapshot) bool
	Handle(s *world.Snapshot, b *Batch) bool
}

// Category groups commands that run together. Categories run in the order
// declared here every step: reactive unit behaviour first, then training,
// then structures, then research.
type Category int

const (
	Unit Category = iota
	Train
	Build
	Upgrade
)

// Categories lists every category in evaluation order.
var Categories = []Category{Unit, Train, Build, Upgrade}

func (c Category) String() string {
	switch c {
	case Unit:
		return "unit"
	case Train:
		return "train"
	case Build:
		return "build"
	case Upgrade:
		return "upgrade"
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for _, known := range Categories {
		if known.String() == string(text) {
			*c = known
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}
