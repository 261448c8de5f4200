package sound

// Bus names an output group. A channel's effective volume is its own volume
// scaled by its bus gain and the master gain.
type Bus string

const (
	BusNone  Bus = ""
	BusMusic Bus = "music"
	BusSFX   Bus = "sfx"
	BusUI    Bus = "ui"
)

// Mixer holds per-bus and master gains.
type Mixer struct {
	master float64
	muted  bool
	gains  map[Bus]float64
}

// NewMixer clamps every gain into [0,1]. Buses not listed have gain 1.
func NewMixer(master float64, gains map[Bus]float64) *Mixer {
	m := &Mixer{master: clamp01(master), gains: make(map[Bus]float64, len(gains))}
	for bus, g := range gains {
		m.gains[bus] = clamp01(g)
	}
	return m
}

// Gain is the multiplier applied to a channel routed to bus.
func (m *Mixer) Gain(bus Bus) float64 {
	if m == nil {
		return 1
	}
	if m.muted {
		return 0
	}
	return m.master * m.BusVolume(bus)
}

func (m *Mixer) BusVolume(bus Bus) float64 {
	if g, ok := m.gains[bus]; ok {
		return g
	}
	return 1
}

func (m *Mixer) Master() float64 {
	return m.master
}

func (m *Mixer) Muted() bool {
	return m.muted
}

func (m *Mixer) setBus(bus Bus, v float64) {
	m.gains[bus] = clamp01(v)
}

func (m *Mixer) setMaster(v float64) {
	m.master = clamp01(v)
}

func (m *Mixer) setMuted(muted bool) {
	m.muted = muted
}
