package ebitenaudio

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
)

// voice owns at most one audio.Player. A new player is built on every Play
// so pitch and loop changes take effect.
type voice struct {
	dev    *Device
	clip   *Clip
	player *audio.Player
	volume float64
	pitch  float64
	loop   bool
}

func (v *voice) SetClip(c sound.Clip) {
	v.closePlayer()
	v.clip = nil
	if c == nil {
		return
	}
	clip, ok := c.(*Clip)
	if !ok {
		log.Warn(log.CatAudio, "Clip not decoded by this device", "type", fmt.Sprintf("%T", c))
		return
	}
	v.clip = clip
}

func (v *voice) SetVolume(f float64) {
	v.volume = f
	if v.player != nil {
		v.player.SetVolume(f)
	}
}

func (v *voice) SetPitch(f float64) { v.pitch = f }

func (v *voice) SetLoop(b bool) { v.loop = b }

func (v *voice) Play() {
	v.closePlayer()
	if v.clip == nil || v.dev.ctx == nil {
		return
	}
	pcm := v.dev.pcmFor(v.clip, v.pitch)

	if v.loop {
		src := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := v.dev.ctx.NewPlayer(src)
		if err != nil {
			log.Error(log.CatAudio, "Failed to create looping player", "clip", v.clip.name, "error", err)
			return
		}
		v.player = p
	} else {
		v.player = v.dev.ctx.NewPlayerFromBytes(pcm)
	}
	v.player.SetVolume(v.volume)
	v.player.Play()
}

func (v *voice) Pause() {
	if v.player != nil {
		v.player.Pause()
	}
}

func (v *voice) Resume() {
	if v.player != nil {
		v.player.Play()
	}
}

func (v *voice) Stop() { v.closePlayer() }

func (v *voice) IsPlaying() bool {
	return v.player != nil && v.player.IsPlaying()
}

func (v *voice) closePlayer() {
	if v.player == nil {
		return
	}
	if err := v.player.Close(); err != nil {
		log.Warn(log.CatAudio, "Failed to close player", "error", err)
	}
	v.player = nil
}
