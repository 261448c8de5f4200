package sound

import "github.com/milk9111/paintzone/log"

// MusicState is the sequencer state.
type MusicState int

const (
	MusicIdle MusicState = iota
	MusicQueued
	MusicPlaying
)

func (s MusicState) String() string {
	switch s {
	case MusicQueued:
		return "queued"
	case MusicPlaying:
		return "playing"
	default:
		return "idle"
	}
}

// MusicStatus is a snapshot of the sequencer.
type MusicStatus struct {
	State    MusicState
	Category Category
	Current  string
	Queue    []string
	Stopped  bool
}

// sequencer plays a shuffled category back to back. generation changes on
// every new sequence so a track end from an older sequence is ignored.
type sequencer struct {
	category   Category
	queue      []*Definition
	current    *ActiveSound
	stopped    bool
	generation uint64
	state      MusicState
}

// PlayByCategory shuffles every member of cat and plays them back to back.
// Whatever was sequencing before stops immediately. The playlist does not
// repeat: call again to loop it.
func (m *Manager) PlayByCategory(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.playByCategory(cat)
}

// StopCurrent stops the sequenced track and suppresses auto-advance.
func (m *Manager) StopCurrent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.stopCurrent()
}

// Music returns the sequencer state.
func (m *Manager) Music() MusicStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := MusicStatus{
		State:    m.music.state,
		Category: m.music.category,
		Stopped:  m.music.stopped,
		Queue:    make([]string, 0, len(m.music.queue)),
	}
	if m.music.current != nil {
		st.Current = m.music.current.def.Name
	}
	for _, def := range m.music.queue {
		st.Queue = append(st.Queue, def.Name)
	}
	return st
}

func (m *Manager) playByCategory(cat Category) {
	if m.music.current != nil {
		m.stopCurrent()
	}
	m.music.stopped = false
	m.music.generation++
	m.music.category = cat

	defs := m.catalog.Category(cat)
	if len(defs) == 0 {
		log.Warn(log.CatMusic, "No sounds found for category", "category", cat)
		m.music.queue = nil
		m.music.state = MusicIdle
		return
	}
	m.rng.Shuffle(len(defs), func(i, j int) {
		defs[i], defs[j] = defs[j], defs[i]
	})
	m.music.queue = defs
	m.music.state = MusicQueued

	log.Info(log.CatMusic, "Music queue built", "category", cat, "tracks", len(defs))
	m.playNextInQueue()
}

func (m *Manager) playNextInQueue() {
	if m.music.stopped || len(m.music.queue) == 0 {
		m.music.current = nil
		m.music.queue = nil
		m.music.state = MusicIdle
		log.Debug(log.CatMusic, "Music sequence ended", "category", m.music.category, "stopped", m.music.stopped)
		return
	}

	def := m.music.queue[0]
	m.music.queue[0] = nil
	m.music.queue = m.music.queue[1:]

	gen := m.music.generation
	m.music.current = m.dispatch(def, def.Volume, func() { m.onTrackEnd(gen) })
	m.music.state = MusicPlaying
	log.Info(log.CatMusic, "Track started", "sound", def.Name, "remaining", len(m.music.queue))
}

func (m *Manager) onTrackEnd(gen uint64) {
	if gen != m.music.generation || m.music.stopped {
		log.Debug(log.CatMusic, "Stale track end ignored")
		return
	}
	m.playNextInQueue()
}

func (m *Manager) stopCurrent() {
	m.music.stopped = true
	if cur := m.music.current; cur != nil {
		m.reclaim(cur, EventStopped)
	}
	m.music.current = nil
	m.music.queue = nil
	m.music.state = MusicIdle
}
