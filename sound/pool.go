package sound

import "github.com/milk9111/paintzone/log"

// ChannelPool owns every Channel. A channel is either free (queued here and
// reset) or in use by exactly one playback. The pool grows when exhausted
// and never shrinks.
type ChannelPool struct {
	device   Device
	channels []*Channel
	free     []*Channel
}

// NewChannelPool creates size idle channels up front.
func NewChannelPool(device Device, size int) *ChannelPool {
	if device == nil {
		device = NoopDevice{}
	}
	size = max(size, 0)
	p := &ChannelPool{
		device:   device,
		channels: make([]*Channel, 0, size),
		free:     make([]*Channel, 0, size),
	}
	for range size {
		ch := p.newChannel()
		p.free = append(p.free, ch)
	}
	return p
}

// Acquire returns a free channel, creating one if none is left. It never
// blocks and never fails.
func (p *ChannelPool) Acquire() *Channel {
	ch, _ := p.acquire()
	return ch
}

func (p *ChannelPool) acquire() (*Channel, bool) {
	if len(p.free) > 0 {
		ch := p.free[0]
		p.free[0] = nil
		p.free = p.free[1:]
		ch.inUse = true
		return ch, false
	}

	ch := p.newChannel()
	ch.inUse = true
	log.Warn(log.CatPool, "Pool is empty, creating a new channel", "size", len(p.channels))
	return ch, true
}

// Release resets ch and puts it back in the free queue. Releasing a channel
// that is already free, or that belongs to another pool, is a no-op and
// returns false.
func (p *ChannelPool) Release(ch *Channel) bool {
	if ch == nil || ch.pool != p || !ch.inUse {
		if ch != nil {
			log.Debug(log.CatPool, "Release ignored", "channel", ch.id)
		}
		return false
	}
	ch.reset()
	ch.inUse = false
	ch.gen++
	p.free = append(p.free, ch)
	return true
}

// Size is the number of channels ever created.
func (p *ChannelPool) Size() int { return len(p.channels) }

func (p *ChannelPool) Free() int { return len(p.free) }

func (p *ChannelPool) InUse() int { return len(p.channels) - len(p.free) }

func (p *ChannelPool) newChannel() *Channel {
	ch := newChannel(len(p.channels)+1, p, p.device.NewVoice())
	p.channels = append(p.channels, ch)
	return ch
}
