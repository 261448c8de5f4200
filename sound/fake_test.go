package sound

import (
	"math/rand/v2"
	"testing"
	"time"
)

type fakeClip struct {
	name string
	d    time.Duration
}

func (c *fakeClip) Duration() time.Duration { return c.d }

// fakeDevice records every voice call so tests can assert on device state
// changes.
type fakeDevice struct {
	voices []*fakeVoice
	calls  int
}

func (d *fakeDevice) NewVoice() Voice {
	v := &fakeVoice{dev: d, volume: 1, pitch: 1}
	d.voices = append(d.voices, v)
	return v
}

type fakeVoice struct {
	dev     *fakeDevice
	clip    Clip
	volume  float64
	pitch   float64
	loop    bool
	playing bool
	plays   int
	stops   int
}

func (v *fakeVoice) SetClip(c Clip) { v.dev.calls++; v.clip = c }
func (v *fakeVoice) SetVolume(f float64) { v.dev.calls++; v.volume = f }
func (v *fakeVoice) SetPitch(f float64) { v.dev.calls++; v.pitch = f }
func (v *fakeVoice) SetLoop(b bool) { v.dev.calls++; v.loop = b }
func (v *fakeVoice) Play() { v.dev.calls++; v.playing = true; v.plays++ }
func (v *fakeVoice) Pause() { v.dev.calls++; v.playing = false }
func (v *fakeVoice) Resume() { v.dev.calls++; v.playing = true }
func (v *fakeVoice) Stop() { v.dev.calls++; v.playing = false; v.stops++ }
func (v *fakeVoice) IsPlaying() bool { return v.playing }

func clip(name string, d time.Duration) *fakeClip {
	return &fakeClip{name: name, d: d}
}

func sfx(name string, cat Category, d time.Duration) Definition {
	return Definition{Name: name, Category: cat, Clip: clip(name, d), Volume: 1, Pitch: 1, Bus: BusSFX}
}

func looping(name string, cat Category) Definition {
	return Definition{Name: name, Category: cat, Clip: clip(name, time.Second), Volume: 1, Pitch: 1, Loop: true, Bus: BusMusic}
}

func newTestManager(t *testing.T, defs []Definition, opts Options) (*Manager, *fakeDevice) {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	dev := &fakeDevice{}
	m := New(NewCatalog(defs), dev, opts)
	t.Cleanup(m.Close)
	return m, dev
}

func countEvents(events []Event, typ EventType, sound string) int {
	n := 0
	for _, e := range events {
		if e.Type == typ && (sound == "" || e.Sound == sound) {
			n++
		}
	}
	return n
}

func activeNames(m *Manager) []string {
	var out []string
	for _, info := range m.Active() {
		out = append(out, info.Sound)
	}
	return out
}

func voiceFor(m *Manager, dev *fakeDevice, sound string) *fakeVoice {
	for _, info := range m.Active() {
		if info.Sound == sound {
			return dev.voices[info.Channel-1]
		}
	}
	return nil
}

func randFor(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
