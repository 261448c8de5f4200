// Package ebitenaudio plays sound.Clips through an Ebiten audio context.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
	"github.com/patrickmn/go-cache"
)

// Decoded PCM is 16-bit little-endian stereo.
const bytesPerFrame = 4

// Clip is a decoded WAV file held in memory.
type Clip struct {
	name       string
	pcm        []byte
	sampleRate int
}

func (c *Clip) Name() string { return c.name }

func (c *Clip) Duration() time.Duration {
	if c == nil || c.sampleRate <= 0 {
		return 0
	}
	frames := len(c.pcm) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(c.sampleRate)
}

// Device creates voices on an Ebiten audio context and loads clips from an
// fs.FS.
type Device struct {
	ctx        *audio.Context
	fsys       fs.FS
	sampleRate int

	// clips holds decoded clips by path, pitched holds resampled PCM by
	// clip name and pitch.
	clips   *cache.Cache
	pitched *cache.Cache
}

func NewDevice(ctx *audio.Context, fsys fs.FS) *Device {
	return newDevice(ctx, fsys, ctx.SampleRate())
}

// NewHeadlessDevice decodes clips at sampleRate but its voices never make a
// sound. It backs runs with audio disabled, where clip durations still
// drive auto-release.
func NewHeadlessDevice(fsys fs.FS, sampleRate int) *Device {
	return newDevice(nil, fsys, sampleRate)
}

func newDevice(ctx *audio.Context, fsys fs.FS, sampleRate int) *Device {
	return &Device{
		ctx:        ctx,
		fsys:       fsys,
		sampleRate: sampleRate,
		clips:      cache.New(cache.NoExpiration, 0),
		pitched:    cache.New(5*time.Minute, 10*time.Minute),
	}
}

// LoadClip decodes the WAV file at path. Decoded clips are cached, so
// repeated loads of one path share PCM.
func (d *Device) LoadClip(path string) (sound.Clip, error) {
	clean := strings.TrimPrefix(path, "assets/")
	if v, ok := d.clips.Get(clean); ok {
		return v.(*Clip), nil
	}

	b, err := fs.ReadFile(d.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: read %s: %w", clean, err)
	}
	pcm, err := decodeWAV(b, d.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: decode %s: %w", clean, err)
	}

	c := &Clip{name: clean, pcm: pcm, sampleRate: d.sampleRate}
	d.clips.Set(clean, c, cache.NoExpiration)
	log.Debug(log.CatCatalog, "Clip decoded", "path", clean, "duration", c.Duration())
	return c, nil
}

// NewVoice implements sound.Device.
func (d *Device) NewVoice() sound.Voice {
	return &voice{dev: d, volume: 1, pitch: 1}
}

func (d *Device) pcmFor(c *Clip, pitch float64) []byte {
	if pitch == 1 {
		return c.pcm
	}
	key := fmt.Sprintf("%s@%.3f", c.name, pitch)
	if v, ok := d.pitched.Get(key); ok {
		return v.([]byte)
	}
	out := resample(c.pcm, pitch)
	d.pitched.Set(key, out, cache.DefaultExpiration)
	return out
}

func decodeWAV(b []byte, sampleRate int) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

// resample changes playback speed by pitch with linear interpolation over
// stereo frames. pitch 2 halves the frame count.
func resample(pcm []byte, pitch float64) []byte {
	frames := len(pcm) / bytesPerFrame
	if frames == 0 || pitch <= 0 || pitch == 1 {
		return pcm
	}
	n := max(int(float64(frames)/pitch), 1)
	out := make([]byte, n*bytesPerFrame)
	last := frames - 1
	for i := range n {
		pos := float64(i) * pitch
		idx := min(int(pos), last)
		frac := pos - float64(idx)
		next := min(idx+1, last)
		for ch := range 2 {
			s0 := float64(sample(pcm, idx, ch))
			s1 := float64(sample(pcm, next, ch))
			putSample(out, i, ch, int16(s0+(s1-s0)*frac))
		}
	}
	return out
}

func sample(pcm []byte, frame, ch int) int16 {
	off := frame*bytesPerFrame + ch*2
	return int16(uint16(pcm[off]) | uint16(pcm[off+1])<<8)
}

func putSample(pcm []byte, frame, ch int, v int16) {
	off := frame*bytesPerFrame + ch*2
	pcm[off] = byte(v)
	pcm[off+1] = byte(uint16(v) >> 8)
}
