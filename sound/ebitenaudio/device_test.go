package ebitenaudio

import (
	"bytes"
	"encoding/binary"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monoWAV builds a 16-bit mono PCM WAV file with the given samples.
func monoWAV(rate int, samples []int16) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		_ = binary.Write(&data, binary.LittleEndian, s)
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&b, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&b, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&b, binary.LittleEndian, uint32(rate*2))
	_ = binary.Write(&b, binary.LittleEndian, uint16(2))
	_ = binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

func stereoPCM(frames ...[2]int16) []byte {
	out := make([]byte, len(frames)*bytesPerFrame)
	for i, f := range frames {
		putSample(out, i, 0, f[0])
		putSample(out, i, 1, f[1])
	}
	return out
}

func TestClip_Duration(t *testing.T) {
	tests := []struct {
		name string
		clip *Clip
		want time.Duration
	}{
		{"one second", &Clip{pcm: make([]byte, 4*1000), sampleRate: 1000}, time.Second},
		{"half second", &Clip{pcm: make([]byte, 4*22050), sampleRate: 44100}, 500 * time.Millisecond},
		{"partial frame ignored", &Clip{pcm: make([]byte, 4*10+3), sampleRate: 10}, time.Second},
		{"no rate", &Clip{pcm: make([]byte, 40)}, 0},
		{"nil", nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.clip.Duration())
		})
	}
}

func TestResample(t *testing.T) {
	pcm := stereoPCM([2]int16{0, 0}, [2]int16{100, -100}, [2]int16{200, -200}, [2]int16{300, -300})

	t.Run("unity pitch is a no-op", func(t *testing.T) {
		assert.Equal(t, pcm, resample(pcm, 1))
	})

	t.Run("double pitch halves frames", func(t *testing.T) {
		out := resample(pcm, 2)
		require.Len(t, out, 2*bytesPerFrame)
		assert.Equal(t, int16(0), sample(out, 0, 0))
		assert.Equal(t, int16(200), sample(out, 1, 0))
		assert.Equal(t, int16(-200), sample(out, 1, 1))
	})

	t.Run("half pitch interpolates", func(t *testing.T) {
		out := resample(pcm, 0.5)
		require.Len(t, out, 8*bytesPerFrame)
		assert.Equal(t, int16(50), sample(out, 1, 0))
		assert.Equal(t, int16(-150), sample(out, 3, 1))
		assert.Equal(t, int16(300), sample(out, 7, 0), "tail holds the last frame")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, resample(nil, 2))
	})
}

func TestDevice_LoadClip(t *testing.T) {
	fsys := fstest.MapFS{
		"blip.wav":   {Data: monoWAV(1000, make([]int16, 250))},
		"broken.wav": {Data: []byte("not a wav")},
	}
	d := newDevice(nil, fsys, 1000)

	c, err := d.LoadClip("assets/blip.wav")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, c.Duration())
	assert.Equal(t, "blip.wav", c.(*Clip).Name())

	again, err := d.LoadClip("blip.wav")
	require.NoError(t, err)
	assert.Same(t, c, again, "decoded clips are cached")

	_, err = d.LoadClip("missing.wav")
	assert.Error(t, err)

	_, err = d.LoadClip("broken.wav")
	assert.Error(t, err)
}

func TestDevice_PitchedPCMIsCached(t *testing.T) {
	d := newDevice(nil, fstest.MapFS{}, 1000)
	c := &Clip{name: "x", pcm: stereoPCM([2]int16{1, 1}, [2]int16{2, 2}), sampleRate: 1000}

	assert.Equal(t, c.pcm, d.pcmFor(c, 1))
	first := d.pcmFor(c, 2)
	second := d.pcmFor(c, 2)
	assert.Equal(t, 1, d.pitched.ItemCount())
	assert.Equal(t, first, second)
}

func TestVoice_WithoutContextStaysSilent(t *testing.T) {
	d := newDevice(nil, fstest.MapFS{}, 1000)
	v := d.NewVoice()
	v.SetClip(&Clip{name: "x", pcm: stereoPCM([2]int16{1, 1}), sampleRate: 1000})
	v.SetVolume(0.5)
	v.Play()
	assert.False(t, v.IsPlaying())
	v.Pause()
	v.Resume()
	v.Stop()
	v.SetClip(nil)
}
