package sound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestChannelPool_AcquireIsFIFO(t *testing.T) {
	p := NewChannelPool(&fakeDevice{}, 3)

	a := p.Acquire()
	b := p.Acquire()
	assert.Equal(t, 1, a.ID())
	assert.Equal(t, 2, b.ID())

	require.True(t, p.Release(a))
	c := p.Acquire()
	assert.Equal(t, 3, c.ID(), "released channels queue behind idle ones")
	d := p.Acquire()
	assert.Same(t, a, d)
}

func TestChannelPool_GrowsWhenExhausted(t *testing.T) {
	p := NewChannelPool(&fakeDevice{}, 1)

	first := p.Acquire()
	second, grew := p.acquire()

	assert.True(t, grew)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, 0, p.Free())
	assert.Equal(t, 2, p.InUse())

	require.True(t, p.Release(first))
	require.True(t, p.Release(second))
	assert.Equal(t, 2, p.Size(), "pool never shrinks")
	assert.Equal(t, 2, p.Free())
}

func TestChannelPool_ZeroSize(t *testing.T) {
	p := NewChannelPool(nil, 0)
	ch := p.Acquire()
	require.NotNil(t, ch)
	assert.True(t, ch.InUse())
	assert.Equal(t, 1, p.Size())
}

func TestChannelPool_ReleaseResets(t *testing.T) {
	dev := &fakeDevice{}
	p := NewChannelPool(dev, 1)
	ch := p.Acquire()

	def := &Definition{Name: "splat", Clip: clip("splat", time.Second), Volume: 0.3, Pitch: 1.5, Loop: true, Bus: BusSFX}
	ch.configure(def, def.Volume, 1)
	ch.start()
	gen := ch.gen

	require.True(t, p.Release(ch))

	assert.False(t, ch.InUse())
	assert.Nil(t, ch.Clip())
	assert.Equal(t, 1.0, ch.Volume())
	assert.Equal(t, 1.0, ch.Pitch())
	assert.False(t, ch.Loop())
	assert.Equal(t, BusNone, ch.Bus())
	assert.Equal(t, gen+1, ch.gen)

	v := dev.voices[0]
	assert.False(t, v.playing)
	assert.Nil(t, v.clip)
	assert.Equal(t, 1.0, v.volume)
	assert.Equal(t, 1.0, v.pitch)
	assert.False(t, v.loop)
}

func TestChannelPool_DoubleReleaseIsNoop(t *testing.T) {
	p := NewChannelPool(&fakeDevice{}, 2)
	ch := p.Acquire()

	require.True(t, p.Release(ch))
	assert.False(t, p.Release(ch))
	assert.False(t, p.Release(nil))
	assert.Equal(t, 2, p.Free(), "free set must not hold duplicates")
}

func TestChannelPool_ForeignChannelIgnored(t *testing.T) {
	p := NewChannelPool(&fakeDevice{}, 1)
	other := NewChannelPool(&fakeDevice{}, 1)

	ch := other.Acquire()
	assert.False(t, p.Release(ch))
	assert.True(t, ch.InUse())
	assert.Equal(t, 1, p.Free())
}

// Property: across any sequence of acquire, release and repeated release,
// every channel is in exactly one of free or in-use and no channel is held
// twice.
func TestChannelPool_InvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.IntRange(0, 5).Draw(t, "initial")
		p := NewChannelPool(&fakeDevice{}, initial)

		var held []*Channel
		var released []*Channel

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				held = append(held, p.Acquire())
			case 1:
				if len(held) == 0 {
					continue
				}
				idx := rapid.IntRange(0, len(held)-1).Draw(t, "releaseIdx")
				ch := held[idx]
				held = append(held[:idx], held[idx+1:]...)
				if !p.Release(ch) {
					t.Fatalf("release of held channel %d failed", ch.ID())
				}
				released = append(released, ch)
			case 2:
				if len(released) == 0 {
					continue
				}
				idx := rapid.IntRange(0, len(released)-1).Draw(t, "doubleIdx")
				ch := released[idx]
				if !ch.InUse() && p.Release(ch) {
					t.Fatalf("double release of channel %d succeeded", ch.ID())
				}
			}

			seen := make(map[*Channel]bool)
			for _, ch := range held {
				if seen[ch] {
					t.Fatalf("channel %d held twice", ch.ID())
				}
				seen[ch] = true
				if !ch.InUse() {
					t.Fatalf("held channel %d not in use", ch.ID())
				}
			}
			freeSeen := make(map[*Channel]bool)
			for _, ch := range p.free {
				if freeSeen[ch] {
					t.Fatalf("channel %d free twice", ch.ID())
				}
				freeSeen[ch] = true
				if ch.InUse() || seen[ch] {
					t.Fatalf("free channel %d is in use", ch.ID())
				}
			}
			if len(held)+p.Free() != p.Size() {
				t.Fatalf("held %d + free %d != size %d", len(held), p.Free(), p.Size())
			}
		}
	})
}
