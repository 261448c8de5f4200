package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/paintzone/config"
	"github.com/milk9111/paintzone/levels"
	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
)

const volumeStep = 0.1

// categoryKeys fire one random sound of a category, standing in for
// gameplay while the demo runs.
var categoryKeys = []struct {
	key ebiten.Key
	cat sound.Category
}{
	{ebiten.KeyDigit1, sound.CategoryPickup},
	{ebiten.KeyDigit2, sound.CategoryThrow},
	{ebiten.KeyDigit3, sound.CategoryPaint},
	{ebiten.KeyDigit4, sound.CategoryDeposit},
	{ebiten.KeyDigit5, sound.CategoryWrongDeposit},
	{ebiten.KeyDigit6, sound.CategoryTimerWarning},
	{ebiten.KeyDigit7, sound.CategoryVictory},
	{ebiten.KeyDigit8, sound.CategoryDefeat},
}

type Game struct {
	frames int

	ctx    context.Context
	cfg    config.Config
	audio  *audioStack
	runner *levels.Runner

	menuMusic sound.Category
	gameMusic sound.Category

	paused     bool
	pauseUI    *ebitenui.UI
	pauseLabel *widget.Text
	master     float64
	music      float64
	muted      bool

	eventCounts map[sound.EventType]int
	lastEvent   string
}

func NewGame(ctx context.Context, cfg config.Config, stack *audioStack, script *levels.Script) *Game {
	g := &Game{
		ctx:         ctx,
		cfg:         cfg,
		audio:       stack,
		runner:      levels.NewRunner(script),
		master:      cfg.Audio.MasterVolume,
		music:       1,
		eventCounts: make(map[sound.EventType]int),
	}
	g.menuMusic, g.gameMusic = musicCategories(cfg)
	if v, ok := cfg.Audio.Buses[string(sound.BusMusic)]; ok {
		g.music = v
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	g.frames++
	m := g.audio.manager
	dt := time.Second / time.Duration(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}

	if g.paused {
		g.pauseUI.Update()
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
		g.handleKeys(m)
		g.runner.Update(dt, m)
	}

	m.Update(dt)
	g.audio.pollWatcher(g.ctx)
	for _, e := range m.DrainEvents() {
		g.eventCounts[e.Type]++
		g.lastEvent = fmt.Sprintf("%s %s", e.Type, e.Sound)
	}
	return nil
}

func (g *Game) handleKeys(m *sound.Manager) {
	for _, k := range categoryKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			m.PlayRandom(k.cat)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		m.PlayRandom(sound.CategoryUIPressed)
		g.runner.Skip()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		m.PlayRandom(sound.CategoryUISelected)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		m.PlayByCategory(g.gameMusic)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		m.StopCurrent()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		m.FadeOut(g.gameMusic)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		m.FadeInRandom(g.gameMusic)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.adjustMaster(-volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.adjustMaster(volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit0):
		g.toggleMute()
	}
}

// musicCategories returns the configured menu and game music categories,
// falling back to the built-in ones when unset.
func musicCategories(cfg config.Config) (menu, game sound.Category) {
	menu, game = sound.Category(cfg.Music.MenuCategory), sound.Category(cfg.Music.GameCategory)
	if menu == "" {
		menu = sound.CategoryMenuMusic
	}
	if game == "" {
		game = sound.CategoryGameMusic
	}
	return menu, game
}

// setPaused holds both music categories while the pause menu is open.
// Sound effects finish on their own.
func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if g.pauseLabel != nil {
		g.pauseLabel.Label = volumeLabel(g)
	}
	m := g.audio.manager
	for _, cat := range []sound.Category{g.menuMusic, g.gameMusic} {
		if paused {
			m.Pause(cat)
		} else {
			m.Unpause(cat)
		}
	}
	m.PlayRandom(sound.CategoryUIPressed)
	log.Debug(log.CatGame, "Pause toggled", "paused", paused)
}

func (g *Game) adjustMaster(delta float64) {
	g.master = min(max(g.master+delta, 0), 1)
	g.audio.manager.SetMasterVolume(g.master)
}

func (g *Game) adjustMusic(delta float64) {
	g.music = min(max(g.music+delta, 0), 1)
	g.audio.manager.SetBusVolume(sound.BusMusic, g.music)
}

func (g *Game) toggleMute() {
	g.muted = !g.muted
	if g.muted {
		g.audio.manager.Mute()
	} else {
		g.audio.manager.Unmute()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.status())
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) status() string {
	m := g.audio.manager
	round := g.runner.Round()
	music := m.Music()
	st := m.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    FPS: %.2f\n", g.frames, ebiten.ActualFPS())
	fmt.Fprintf(&b, "Round: %s (%s)  %.1fs / %.0fs\n", round.Name, m.Scene(), g.runner.Elapsed().Seconds(), round.Seconds)
	fmt.Fprintf(&b, "Music: %s %s  queue=%v\n", music.State, music.Current, music.Queue)
	fmt.Fprintf(&b, "Channels: %d  in use: %d  timers: %d  fades: %d\n", st.Channels, st.InUse, st.Timers, st.Fades)
	fmt.Fprintf(&b, "Master: %.1f  Music bus: %.1f  Muted: %t\n", g.master, g.music, g.muted)
	fmt.Fprintf(&b, "Events: started=%d finished=%d faded=%d  last: %s\n\n",
		g.eventCounts[sound.EventStarted], g.eventCounts[sound.EventFinished], g.eventCounts[sound.EventFadedOut], g.lastEvent)
	for _, info := range m.Active() {
		fmt.Fprintf(&b, "  ch%-2d %-16s %-14s vol=%.2f", info.Channel, info.Sound, info.Category, info.Volume)
		if info.Paused {
			b.WriteString(" paused")
		}
		if info.FadingOut {
			b.WriteString(" fading")
		}
		b.WriteByte('\n')
	}
	b.WriteString("\n1-8 sfx  Tab next round  M music  S stop  F/G fade  -/= master  0 mute  Esc pause  Q quit")
	return b.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
