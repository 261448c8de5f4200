package sound

// Channel is a reusable playback unit borrowed for the duration of one
// playback and reset when it is returned to its pool.
type Channel struct {
	id    int
	gen   uint32
	pool  *ChannelPool
	voice Voice

	clip   Clip
	volume float64
	pitch  float64
	loop   bool
	bus    Bus

	inUse  bool
	paused bool
}

func newChannel(id int, pool *ChannelPool, voice Voice) *Channel {
	return &Channel{id: id, pool: pool, voice: voice, volume: 1, pitch: 1}
}

func (c *Channel) ID() int { return c.id }
func (c *Channel) Clip() Clip { return c.clip }
func (c *Channel) Volume() float64 { return c.volume }
func (c *Channel) Pitch() float64 { return c.pitch }
func (c *Channel) Loop() bool { return c.loop }
func (c *Channel) Bus() Bus { return c.bus }
func (c *Channel) InUse() bool { return c.inUse }
func (c *Channel) Paused() bool { return c.paused }

func (c *Channel) configure(def *Definition, volume, gain float64) {
	c.clip = def.Clip
	c.pitch = def.Pitch
	c.loop = def.Loop
	c.bus = def.Bus
	c.voice.SetClip(def.Clip)
	c.voice.SetPitch(def.Pitch)
	c.voice.SetLoop(def.Loop)
	c.setVolume(volume, gain)
}

func (c *Channel) setVolume(volume, gain float64) {
	c.volume = clamp01(volume)
	c.voice.SetVolume(c.volume * gain)
}

func (c *Channel) start() {
	c.paused = false
	c.voice.Play()
}

func (c *Channel) pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.voice.Pause()
}

func (c *Channel) resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.voice.Resume()
}

func (c *Channel) reset() {
	c.voice.Stop()
	c.voice.SetClip(nil)
	c.voice.SetVolume(1)
	c.voice.SetPitch(1)
	c.voice.SetLoop(false)
	c.clip = nil
	c.volume = 1
	c.pitch = 1
	c.loop = false
	c.bus = BusNone
	c.paused = false
}

// lease is a borrowed channel at a given generation. It stops resolving as
// soon as the channel is released, even if the channel is handed out again.
type lease struct {
	ch  *Channel
	gen uint32
}

func (l lease) valid() bool {
	return l.ch != nil && l.ch.inUse && l.ch.gen == l.gen
}
