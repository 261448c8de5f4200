package sound

import (
	"fmt"
	"slices"
	"strings"

	"github.com/milk9111/paintzone/log"
)

// Category groups related sounds for random selection and bulk
// stop/pause/fade.
type Category string

const (
	CategoryMenuMusic    Category = "menu_music"
	CategoryGameMusic    Category = "game_music"
	CategoryPickup       Category = "pickup"
	CategoryThrow        Category = "throw"
	CategoryPaint        Category = "paint"
	CategoryDeposit      Category = "deposit"
	CategoryWrongDeposit Category = "wrong_deposit"
	CategoryTimerWarning Category = "timer_warning"
	CategoryVictory      Category = "victory"
	CategoryDefeat       Category = "defeat"
	CategoryUISelected   Category = "ui_selected"
	CategoryUIPressed    Category = "ui_pressed"
)

var knownCategories = []Category{
	CategoryMenuMusic, CategoryGameMusic,
	CategoryPickup, CategoryThrow, CategoryPaint,
	CategoryDeposit, CategoryWrongDeposit,
	CategoryTimerWarning, CategoryVictory, CategoryDefeat,
	CategoryUISelected, CategoryUIPressed,
}

// Known reports whether c is one of the game's categories.
func (c Category) Known() bool {
	return slices.Contains(knownCategories, c)
}

// DefaultBus is the bus a category routes to when a definition names none.
func (c Category) DefaultBus() Bus {
	switch c {
	case CategoryMenuMusic, CategoryGameMusic:
		return BusMusic
	case CategoryUISelected, CategoryUIPressed:
		return BusUI
	default:
		return BusSFX
	}
}

// Definition describes how one named sound is played. Definitions are
// immutable once the catalog that owns them is built.
type Definition struct {
	Name        string
	Category    Category
	Clip        Clip
	Volume      float64
	Pitch       float64
	Loop        bool
	Bus         Bus
	PlayAtStart bool
}

// Catalog maps sound names and categories to definitions. It is built once
// and read-only afterwards.
type Catalog struct {
	order      []*Definition
	byName     map[string]*Definition
	byCategory map[Category][]*Definition
}

// NewCatalog indexes defs in order. Entries with a duplicate name or without
// a clip are logged and skipped rather than failing the whole catalog.
func NewCatalog(defs []Definition) *Catalog {
	c := &Catalog{
		order:      make([]*Definition, 0, len(defs)),
		byName:     make(map[string]*Definition, len(defs)),
		byCategory: make(map[Category][]*Definition),
	}

	for i := range defs {
		def := defs[i]
		def.Name = strings.TrimSpace(def.Name)
		if def.Name == "" {
			log.Warn(log.CatCatalog, "Sound without a name skipped", "index", i)
			continue
		}
		if _, exists := c.byName[def.Name]; exists {
			log.Warn(log.CatCatalog, "Sound skipped", "sound", def.Name, "category", def.Category,
				"error", fmt.Errorf("%w: %q", ErrDuplicateSound, def.Name))
			continue
		}
		if def.Clip == nil {
			log.Warn(log.CatCatalog, "Sound skipped", "sound", def.Name,
				"error", fmt.Errorf("%w: %q", ErrNoClip, def.Name))
			continue
		}
		def.Volume = clamp01(def.Volume)
		if def.Pitch <= 0 {
			def.Pitch = 1
		}

		stored := &def
		c.order = append(c.order, stored)
		c.byName[def.Name] = stored
		c.byCategory[def.Category] = append(c.byCategory[def.Category], stored)
	}

	return c
}

// Lookup returns the definition named name.
func (c *Catalog) Lookup(name string) (*Definition, error) {
	if c != nil {
		if def, ok := c.byName[name]; ok {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSoundNotFound, name)
}

// Category returns the members of cat in definition order. The result is a
// copy; an unknown category yields an empty slice.
func (c *Catalog) Category(cat Category) []*Definition {
	if c == nil {
		return nil
	}
	return slices.Clone(c.byCategory[cat])
}

// Definitions returns every definition in load order.
func (c *Catalog) Definitions() []*Definition {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// Categories returns the categories present, sorted.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, 0, len(c.byCategory))
	for cat := range c.byCategory {
		out = append(out, cat)
	}
	slices.Sort(out)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
