// Package props generates per-element attribute bundles. Placement
// decides where an element sits; props decides what it looks like.
// Every bundle is keyed by a derived element seed, so attributes are
// reproducible and independent of how many elements were actually
// placed before this one.
package props

import (
	"github.com/matzehuels/facade/pkg/core/seed"
)

// Default element dimensions in meters.
const (
	DefaultDoorWidth  = 1.0
	DefaultDoorHeight = 2.1

	DefaultWindowWidth      = 1.2
	DefaultWindowHeight     = 1.5
	DefaultWindowSillHeight = 0.9

	DefaultCornerWidth = 0.15
)

// Style names. Cosmetic only: styles never affect placement.
var (
	doorStyles   = []string{"panel", "glazed", "flush"}
	windowStyles = []string{"casement", "sliding", "fixed"}
	cornerStyles = []string{"standard", "ornate", "rounded"}
)

// Door is the attribute bundle for one door.
type Door struct {
	Width        float64           `json:"width" bson:"width"`
	Height       float64           `json:"height" bson:"height"`
	Style        string            `json:"style" bson:"style"`
	MainEntrance bool              `json:"main_entrance,omitempty" bson:"main_entrance,omitempty"`
	Extra        map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
}

// Window is the attribute bundle for one window.
type Window struct {
	Width      float64           `json:"width" bson:"width"`
	Height     float64           `json:"height" bson:"height"`
	SillHeight float64           `json:"sill_height" bson:"sill_height"`
	Style      string            `json:"style" bson:"style"`
	Extra      map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
}

// Corner is the attribute bundle for one corner piece.
type Corner struct {
	Width float64           `json:"width" bson:"width"`
	Style string            `json:"style" bson:"style"`
	Extra map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
}

// MainEntranceIndex picks which door of a ground floor is the main
// entrance. The choice depends only on the door branch seed and the
// target count, so it is stable even when other doors are dropped.
func MainEntranceIndex(branchSeed int64, totalDoors int) int {
	if totalDoors <= 0 {
		return -1
	}
	return int(seed.Element(branchSeed, "entrance", 0) % int64(totalDoors))
}

// ForDoor generates the attributes for door index of totalDoors.
func ForDoor(branchSeed int64, index, totalDoors int, extra map[string]string) Door {
	rng := seed.NewRand(seed.Element(branchSeed, "door", index))
	return Door{
		Width:        DefaultDoorWidth,
		Height:       DefaultDoorHeight,
		Style:        doorStyles[rng.IntN(len(doorStyles))],
		MainEntrance: index == MainEntranceIndex(branchSeed, totalDoors),
		Extra:        copyExtra(extra),
	}
}

// ForWindow generates the attributes for window index.
func ForWindow(branchSeed int64, index int, extra map[string]string) Window {
	rng := seed.NewRand(seed.Element(branchSeed, "window", index))
	return Window{
		Width:      DefaultWindowWidth,
		Height:     DefaultWindowHeight,
		SillHeight: DefaultWindowSillHeight,
		Style:      windowStyles[rng.IntN(len(windowStyles))],
		Extra:      copyExtra(extra),
	}
}

// ForCorner generates the attributes for the corner at vertexIndex.
// A non-positive width falls back to DefaultCornerWidth.
func ForCorner(branchSeed int64, vertexIndex int, width float64, extra map[string]string) Corner {
	if width <= 0 {
		width = DefaultCornerWidth
	}
	rng := seed.NewRand(seed.Element(branchSeed, "corner", vertexIndex))
	return Corner{
		Width: width,
		Style: cornerStyles[rng.IntN(len(cornerStyles))],
		Extra: copyExtra(extra),
	}
}

// copyExtra shallow-copies the opaque pass-through values so bundles
// never alias the caller's map.
func copyExtra(extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]string, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
