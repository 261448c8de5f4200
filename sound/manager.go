// Package sound is the audio playback and mixing manager: a pool of reusable
// channels, a catalog of named sounds grouped by category, a shuffled music
// sequencer, linear fades and pause/resume, all driven by one Update per
// frame.
//
// Every public method is safe to call from any goroutine. Deferred work
// (auto-release, next track, fade completion) only ever runs inside Update.
// Audio failures are logged, never returned: a missing sound must not stop
// the game.
package sound

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/paintzone/log"
)

const (
	DefaultPoolSize     = 10
	DefaultFadeDuration = 2 * time.Second
)

// Options configures a Manager. Zero values fall back to the defaults above,
// a unity mixer and an auto-seeded random source.
type Options struct {
	PoolSize     int
	FadeDuration time.Duration

	// MenuScene and GameScene name the scenes whose music SetScene manages.
	MenuScene string
	GameScene string
	MenuMusic Category
	GameMusic Category

	Mixer *Mixer
	Rand  *rand.Rand
}

// ActiveSound ties a definition to the channel currently playing it. It
// exists from dispatch until the channel is reclaimed.
type ActiveSound struct {
	id    string
	def   *Definition
	lease lease

	timer     handle
	fade      handle
	remaining time.Duration
	paused    bool
	fadingOut bool

	onFinish func()
}

// PlaybackInfo is a snapshot of one active sound.
type PlaybackInfo struct {
	ID        string
	Sound     string
	Category  Category
	Channel   int
	Volume    float64
	Loop      bool
	Paused    bool
	FadingOut bool
}

// Stats is a snapshot of manager bookkeeping.
type Stats struct {
	Channels int
	Free     int
	InUse    int
	Active   int
	Timers   int
	Fades    int
	Now      time.Duration
}

// Manager is the process-wide audio service. Construct one with New, drive
// it with Update every frame and tear it down with Close.
type Manager struct {
	mu sync.Mutex

	opts    Options
	catalog *Catalog
	pool    *ChannelPool
	mixer   *Mixer
	rng     *rand.Rand

	sched  scheduler
	fades  fader
	music  sequencer
	scene  sceneTracker
	active []*ActiveSound
	events EventQueue

	now    time.Duration
	closed bool
}

// New builds the channel pool and dispatches every PlayAtStart sound once,
// in catalog order.
func New(catalog *Catalog, device Device, opts Options) *Manager {
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.FadeDuration <= 0 {
		opts.FadeDuration = DefaultFadeDuration
	}
	if opts.MenuMusic == "" {
		opts.MenuMusic = CategoryMenuMusic
	}
	if opts.GameMusic == "" {
		opts.GameMusic = CategoryGameMusic
	}
	if opts.Mixer == nil {
		opts.Mixer = NewMixer(1, nil)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}

	m := &Manager{
		opts:    opts,
		catalog: catalog,
		pool:    NewChannelPool(device, opts.PoolSize),
		mixer:   opts.Mixer,
		rng:     opts.Rand,
	}

	m.playAtStart()

	log.Info(log.CatAudio, "Audio manager initialized",
		"sounds", catalog.Len(),
		"channels", opts.PoolSize,
		"fade", opts.FadeDuration,
	)
	return m
}

// Update advances virtual time by dt, fires due auto-releases and track
// ends, then steps every fade.
func (m *Manager) Update(dt time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.now += max(dt, 0)
	m.sched.advance(m.now)
	m.stepFades(dt)
}

// Play starts the sound named name on a pooled channel.
func (m *Manager) Play(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.play(name)
}

// PlayRandom plays a uniformly chosen member of cat.
func (m *Manager) PlayRandom(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.playRandom(cat)
}

// Stop immediately stops and reclaims every active sound of cat.
func (m *Manager) Stop(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.stop(cat)
}

// Pause pauses every playing sound of cat without releasing its channel.
func (m *Manager) Pause(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.pause(cat)
}

// Unpause resumes every paused sound of cat.
func (m *Manager) Unpause(cat Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.unpause(cat)
}

// StopAll reclaims every channel and ends music sequencing.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAll()
}

// ReplaceCatalog stops everything and swaps in c. PlayAtStart sounds of c are
// dispatched again and scene music restarts on the next SetScene.
func (m *Manager) ReplaceCatalog(c *Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || c == nil {
		return
	}
	m.stopAll()
	m.catalog = c
	m.scene.menuPlayed = false
	m.scene.gamePlayed = false
	m.playAtStart()
	log.Info(log.CatCatalog, "Catalog replaced", "sounds", c.Len())
}

// Close stops every sound. Later calls on the manager do nothing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.stopAll()
	m.closed = true
	log.Info(log.CatAudio, "Audio manager closed", "channels", m.pool.Size())
}

// Catalog returns the catalog in use.
func (m *Manager) Catalog() *Catalog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog
}

// DrainEvents returns and clears queued playback events.
func (m *Manager) DrainEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events.Drain()
}

// Active returns a snapshot of every active sound in dispatch order.
func (m *Manager) Active() []PlaybackInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PlaybackInfo, 0, len(m.active))
	for _, as := range m.active {
		info := PlaybackInfo{
			ID:        as.id,
			Sound:     as.def.Name,
			Category:  as.def.Category,
			Loop:      as.def.Loop,
			Paused:    as.paused,
			FadingOut: as.fadingOut,
		}
		if as.lease.valid() {
			info.Channel = as.lease.ch.id
			info.Volume = as.lease.ch.volume
		}
		out = append(out, info)
	}
	return out
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Channels: m.pool.Size(),
		Free:     m.pool.Free(),
		InUse:    m.pool.InUse(),
		Active:   len(m.active),
		Timers:   m.sched.pending(),
		Fades:    m.fades.len(),
		Now:      m.now,
	}
}

func (m *Manager) playAtStart() {
	for _, def := range m.catalog.order {
		if def.PlayAtStart {
			m.dispatch(def, def.Volume, nil)
		}
	}
}

func (m *Manager) play(name string) {
	def, err := m.catalog.Lookup(name)
	if err != nil {
		log.Warn(log.CatAudio, "Sound not found", "sound", name, "error", err)
		return
	}
	m.dispatch(def, def.Volume, nil)
}

func (m *Manager) playRandom(cat Category) {
	def := m.randomMember(cat)
	if def == nil {
		return
	}
	m.play(def.Name)
}

func (m *Manager) randomMember(cat Category) *Definition {
	defs := m.catalog.byCategory[cat]
	if len(defs) == 0 {
		log.Warn(log.CatAudio, "Category not found", "category", cat, "error", ErrEmptyCategory)
		return nil
	}
	return defs[m.rng.IntN(len(defs))]
}

// dispatch acquires a channel, configures it from def at volume and starts
// it. Non-looping sounds are reclaimed once their clip duration elapses,
// after which onFinish runs.
func (m *Manager) dispatch(def *Definition, volume float64, onFinish func()) *ActiveSound {
	ch, grew := m.pool.acquire()
	if grew {
		m.events.Push(Event{Type: EventPoolGrew, Channel: ch.id})
	}
	ch.configure(def, volume, m.mixer.Gain(def.Bus))
	ch.start()

	as := &ActiveSound{
		id:       uuid.NewString(),
		def:      def,
		lease:    lease{ch: ch, gen: ch.gen},
		onFinish: onFinish,
	}
	if !def.Loop {
		as.timer = m.sched.after(m.now, def.Clip.Duration(), func() { m.finish(as) })
	}
	m.active = append(m.active, as)

	m.events.Push(Event{Type: EventStarted, Sound: def.Name, Category: def.Category, Channel: ch.id, PlaybackID: as.id})
	log.Debug(log.CatAudio, "Sound started",
		"sound", def.Name,
		"category", def.Category,
		"channel", ch.id,
		"playback", as.id,
		"loop", def.Loop,
	)
	return as
}

// finish handles a natural end. A lease that no longer resolves means the
// channel was already reclaimed, so there is nothing to release.
func (m *Manager) finish(as *ActiveSound) {
	if !as.lease.valid() {
		log.Debug(log.CatAudio, "Stale release ignored", "sound", as.def.Name, "playback", as.id)
		return
	}
	m.reclaim(as, EventFinished)
	if as.onFinish != nil {
		as.onFinish()
	}
}

// reclaim cancels the pending timer and fade of as, returns its channel to
// the pool and forgets it.
func (m *Manager) reclaim(as *ActiveSound, reason EventType) {
	m.sched.cancel(as.timer)
	as.timer = 0
	m.fades.cancel(as.fade)
	as.fade = 0

	channel := 0
	if as.lease.valid() {
		channel = as.lease.ch.id
		m.pool.Release(as.lease.ch)
	}
	if i := slices.Index(m.active, as); i >= 0 {
		m.active = slices.Delete(m.active, i, i+1)
	}
	if m.music.current == as {
		m.music.current = nil
		if reason != EventFinished {
			m.music.queue = nil
			m.music.state = MusicIdle
		}
	}

	m.events.Push(Event{Type: reason, Sound: as.def.Name, Category: as.def.Category, Channel: channel, PlaybackID: as.id})
	log.Debug(log.CatAudio, "Sound reclaimed", "sound", as.def.Name, "channel", channel, "reason", reason)
}

func (m *Manager) activeIn(cat Category) []*ActiveSound {
	var out []*ActiveSound
	for _, as := range m.active {
		if as.def.Category == cat {
			out = append(out, as)
		}
	}
	return out
}

// inCategory returns the active sounds of cat, whether or not the current
// catalog lists cat. It warns when neither knows it.
func (m *Manager) inCategory(cat Category) []*ActiveSound {
	sounds := m.activeIn(cat)
	if len(sounds) == 0 && len(m.catalog.byCategory[cat]) == 0 {
		log.Warn(log.CatAudio, "No sounds found for category", "category", cat, "error", ErrEmptyCategory)
	}
	return sounds
}

func (m *Manager) stop(cat Category) {
	for _, as := range m.inCategory(cat) {
		m.reclaim(as, EventStopped)
	}
}

// pause keys on the sound's own paused state. Headless voices never report
// playback.
func (m *Manager) pause(cat Category) {
	for _, as := range m.inCategory(cat) {
		if as.paused || !as.lease.valid() {
			continue
		}
		as.lease.ch.pause()
		as.paused = true
		if rem, ok := m.sched.remaining(as.timer, m.now); ok {
			as.remaining = rem
			m.sched.cancel(as.timer)
			as.timer = 0
		}
	}
}

func (m *Manager) unpause(cat Category) {
	for _, as := range m.inCategory(cat) {
		if !as.paused {
			continue
		}
		as.lease.ch.resume()
		as.paused = false
		if !as.def.Loop && !as.fadingOut && !as.timer.valid() {
			as.timer = m.sched.after(m.now, as.remaining, func() { m.finish(as) })
			as.remaining = 0
		}
	}
}

func (m *Manager) stopAll() {
	for _, as := range slices.Clone(m.active) {
		m.reclaim(as, EventStopped)
	}
	m.music.generation++
	m.music.queue = nil
	m.music.current = nil
	m.music.state = MusicIdle
}

func (m *Manager) reapplyGains() {
	for _, as := range m.active {
		if !as.lease.valid() {
			continue
		}
		ch := as.lease.ch
		ch.setVolume(ch.volume, m.mixer.Gain(ch.bus))
	}
}

// SetBusVolume sets the gain of bus and re-applies it to playing channels.
func (m *Manager) SetBusVolume(bus Bus, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.setBus(bus, volume)
	m.reapplyGains()
}

// SetMasterVolume sets the master gain and re-applies it.
func (m *Manager) SetMasterVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.setMaster(volume)
	m.reapplyGains()
}

func (m *Manager) Mute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.setMuted(true)
	m.reapplyGains()
}

func (m *Manager) Unmute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.setMuted(false)
	m.reapplyGains()
}
