package sound

import "time"

// Clip is an opaque handle to decoded audio owned by the device layer.
type Clip interface {
	Duration() time.Duration
}

// Voice is one device-level playback unit. A Channel owns exactly one Voice
// for its whole life.
type Voice interface {
	SetClip(clip Clip)
	SetVolume(volume float64)
	SetPitch(pitch float64)
	SetLoop(loop bool)
	Play()
	Pause()
	Resume()
	Stop()
	IsPlaying() bool
}

// Device creates voices. It is the engine capability the pool consumes.
type Device interface {
	NewVoice() Voice
}

// NoopDevice is a Device whose voices make no sound. Use it when audio is
// disabled or no output is available.
type NoopDevice struct{}

func (NoopDevice) NewVoice() Voice { return &noopVoice{} }

type noopVoice struct {
	playing bool
}

func (*noopVoice) SetClip(Clip) {}
func (*noopVoice) SetVolume(float64) {}
func (*noopVoice) SetPitch(float64) {}
func (*noopVoice) SetLoop(bool) {}
func (v *noopVoice) Play() { v.playing = true }
func (v *noopVoice) Pause() { v.playing = false }
func (v *noopVoice) Resume() { v.playing = true }
func (v *noopVoice) Stop() { v.playing = false }
func (v *noopVoice) IsPlaying() bool { return v.playing }
