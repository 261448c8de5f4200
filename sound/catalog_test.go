package sound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_IndexesByNameAndCategory(t *testing.T) {
	c := NewCatalog([]Definition{
		sfx("pickup_a", CategoryPickup, time.Second),
		sfx("throw", CategoryThrow, time.Second),
		sfx("pickup_b", CategoryPickup, time.Second),
	})

	require.Equal(t, 3, c.Len())

	def, err := c.Lookup("throw")
	require.NoError(t, err)
	assert.Equal(t, CategoryThrow, def.Category)

	pickups := c.Category(CategoryPickup)
	require.Len(t, pickups, 2)
	assert.Equal(t, "pickup_a", pickups[0].Name)
	assert.Equal(t, "pickup_b", pickups[1].Name)

	assert.Equal(t, []Category{CategoryPickup, CategoryThrow}, c.Categories())
}

func TestNewCatalog_SkipsBadEntries(t *testing.T) {
	tests := []struct {
		name  string
		defs  []Definition
		names []string
	}{
		{
			name: "duplicate name keeps first",
			defs: []Definition{
				{Name: "hit", Category: CategoryPaint, Clip: clip("a", time.Second), Volume: 0.2},
				{Name: "hit", Category: CategoryPaint, Clip: clip("b", time.Second), Volume: 0.9},
			},
			names: []string{"hit"},
		},
		{
			name: "duplicate across categories",
			defs: []Definition{
				sfx("ding", CategoryDeposit, time.Second),
				sfx("ding", CategoryVictory, time.Second),
			},
			names: []string{"ding"},
		},
		{
			name: "missing clip",
			defs: []Definition{
				{Name: "silent", Category: CategoryPaint},
				sfx("loud", CategoryPaint, time.Second),
			},
			names: []string{"loud"},
		},
		{
			name:  "blank name",
			defs:  []Definition{{Name: "  ", Clip: clip("x", time.Second)}},
			names: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCatalog(tc.defs)
			var got []string
			for _, def := range c.Definitions() {
				got = append(got, def.Name)
			}
			assert.Equal(t, tc.names, got)
		})
	}
}

func TestNewCatalog_FirstDuplicateWins(t *testing.T) {
	c := NewCatalog([]Definition{
		{Name: "hit", Category: CategoryPaint, Clip: clip("a", time.Second), Volume: 0.2},
		{Name: "hit", Category: CategoryDefeat, Clip: clip("b", time.Second), Volume: 0.9},
	})
	def, err := c.Lookup("hit")
	require.NoError(t, err)
	assert.Equal(t, 0.2, def.Volume)
	assert.Empty(t, c.Category(CategoryDefeat))
}

func TestNewCatalog_NormalizesLevels(t *testing.T) {
	c := NewCatalog([]Definition{
		{Name: "loud", Clip: clip("l", time.Second), Volume: 3, Pitch: 0},
		{Name: "quiet", Clip: clip("q", time.Second), Volume: -1, Pitch: -2},
		{Name: "fast", Clip: clip("f", time.Second), Volume: 0.5, Pitch: 1.25},
	})

	loud, _ := c.Lookup("loud")
	quiet, _ := c.Lookup("quiet")
	fast, _ := c.Lookup("fast")

	assert.Equal(t, 1.0, loud.Volume)
	assert.Equal(t, 1.0, loud.Pitch)
	assert.Equal(t, 0.0, quiet.Volume)
	assert.Equal(t, 1.0, quiet.Pitch)
	assert.Equal(t, 0.5, fast.Volume)
	assert.Equal(t, 1.25, fast.Pitch)
}

func TestCatalog_LookupMissing(t *testing.T) {
	c := NewCatalog(nil)
	_, err := c.Lookup("nope")
	assert.ErrorIs(t, err, ErrSoundNotFound)
	assert.Empty(t, c.Category(CategoryMenuMusic))

	var nilCatalog *Catalog
	_, err = nilCatalog.Lookup("nope")
	assert.ErrorIs(t, err, ErrSoundNotFound)
	assert.Zero(t, nilCatalog.Len())
}

func TestCatalog_CategoryIsACopy(t *testing.T) {
	c := NewCatalog([]Definition{
		sfx("a", CategoryPaint, time.Second),
		sfx("b", CategoryPaint, time.Second),
	})
	got := c.Category(CategoryPaint)
	got[0], got[1] = got[1], got[0]

	again := c.Category(CategoryPaint)
	assert.Equal(t, "a", again[0].Name)
}

func TestCategory_KnownAndDefaultBus(t *testing.T) {
	tests := []struct {
		cat   Category
		known bool
		bus   Bus
	}{
		{CategoryMenuMusic, true, BusMusic},
		{CategoryGameMusic, true, BusMusic},
		{CategoryUIPressed, true, BusUI},
		{CategoryDeposit, true, BusSFX},
		{Category("footsteps"), false, BusSFX},
	}
	for _, tc := range tests {
		t.Run(string(tc.cat), func(t *testing.T) {
			assert.Equal(t, tc.known, tc.cat.Known())
			assert.Equal(t, tc.bus, tc.cat.DefaultBus())
		})
	}
}
