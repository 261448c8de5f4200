package sound

import (
	"time"

	"github.com/milk9111/paintzone/log"
)

// fade is a linear volume ramp on one leased channel.
type fade struct {
	h        handle
	as       *ActiveSound
	lease    lease
	from     float64
	to       float64
	elapsed  time.Duration
	duration time.Duration
	onDone   func()
}

type fader struct {
	handles handleStore
	fades   sparseSet[*fade]
}

func (f *fader) start(as *ActiveSound, from, to float64, duration time.Duration, onDone func()) handle {
	h := f.handles.create()
	f.fades.set(h.id(), &fade{
		h:        h,
		as:       as,
		lease:    as.lease,
		from:     from,
		to:       to,
		duration: duration,
		onDone:   onDone,
	})
	return h
}

func (f *fader) cancel(h handle) bool {
	if !f.handles.destroy(h) {
		return false
	}
	f.fades.remove(h.id())
	return true
}

func (f *fader) len() int {
	return f.fades.len()
}

// FadeIn stops whatever def's category is playing, then starts def at
// volume 0 and ramps it to its own volume.
func (m *Manager) FadeIn(def *Definition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.fadeIn(def)
}

// FadeInRandom fades in a uniformly chosen member of cat.
func (m *Manager) FadeInRandom(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if def := m.randomMember(cat); def != nil {
		m.fadeIn(def)
	}
}

// FadeOut ramps every active sound of cat to silence and releases each
// channel once its ramp completes.
func (m *Manager) FadeOut(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.fadeOut(cat)
}

func (m *Manager) fadeIn(def *Definition) {
	if def == nil || def.Clip == nil {
		log.Warn(log.CatFade, "Fade in skipped", "error", ErrNoClip)
		return
	}
	m.stop(def.Category)

	as := m.dispatch(def, 0, nil)
	as.fade = m.fades.start(as, 0, def.Volume, m.opts.FadeDuration, nil)
	m.events.Push(Event{Type: EventFadeStarted, Sound: def.Name, Category: def.Category, Channel: as.lease.ch.id, PlaybackID: as.id})
	log.Debug(log.CatFade, "Fade in", "sound", def.Name, "target", def.Volume, "duration", m.opts.FadeDuration)
}

func (m *Manager) fadeOut(cat Category) {
	for _, as := range m.inCategory(cat) {
		if as.fadingOut || !as.lease.valid() {
			continue
		}
		// The ramp owns the release from here on.
		m.fades.cancel(as.fade)
		m.sched.cancel(as.timer)
		as.timer = 0
		as.fadingOut = true

		target := as
		as.fade = m.fades.start(as, as.lease.ch.volume, 0, m.opts.FadeDuration, func() {
			if target.lease.valid() {
				m.reclaim(target, EventFadedOut)
			}
		})
		m.events.Push(Event{Type: EventFadeStarted, Sound: as.def.Name, Category: cat, Channel: as.lease.ch.id, PlaybackID: as.id})
		log.Debug(log.CatFade, "Fade out", "sound", as.def.Name, "channel", as.lease.ch.id, "duration", m.opts.FadeDuration)
	}
}

// stepFades moves every ramp forward by dt. Completion callbacks run after
// all ramps have been stepped.
func (m *Manager) stepFades(dt time.Duration) {
	var done []*fade
	for _, fd := range m.fades.fades.values() {
		if !m.fades.handles.isAlive(fd.h) {
			continue
		}
		if !fd.lease.valid() {
			m.fades.cancel(fd.h)
			continue
		}

		fd.elapsed += max(dt, 0)
		t := 1.0
		if fd.duration > 0 {
			t = min(float64(fd.elapsed)/float64(fd.duration), 1)
		}
		ch := fd.lease.ch
		ch.setVolume(fd.from+(fd.to-fd.from)*t, m.mixer.Gain(ch.bus))

		if t >= 1 {
			m.fades.cancel(fd.h)
			if fd.as.fade == fd.h {
				fd.as.fade = 0
			}
			done = append(done, fd)
		}
	}
	for _, fd := range done {
		if fd.onDone != nil {
			fd.onDone()
		}
	}
}
