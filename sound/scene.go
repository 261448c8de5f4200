package sound

import (
	"context"

	"github.com/milk9111/paintzone/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/milk9111/paintzone/sound")

// sceneTracker remembers which scene music has already been started so
// SetScene can be called every frame.
type sceneTracker struct {
	current    string
	menuPlayed bool
	gamePlayed bool
}

// SetScene tells the manager which scene is active. Entering the menu scene
// starts a random menu track and fades game music out, and the reverse for
// the game scene. Any other scene only resets that bookkeeping.
func (m *Manager) SetScene(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.setScene(name)
}

// Scene returns the last scene passed to SetScene.
func (m *Manager) Scene() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scene.current
}

func (m *Manager) setScene(name string) {
	prev := m.scene.current
	m.scene.current = name
	if prev != name {
		log.Info(log.CatScene, "Scene changed", "from", prev, "to", name)
	}

	menu, game := m.opts.MenuScene, m.opts.GameScene
	isMenu := menu != "" && name == menu
	isGame := game != "" && name == game

	switch {
	case isMenu && !m.scene.menuPlayed:
		span := m.startSceneSpan(prev, name)
		defer span.End()

		m.playRandom(m.opts.MenuMusic)
		if m.scene.gamePlayed {
			m.fadeOut(m.opts.GameMusic)
			log.Debug(log.CatScene, "Game music removed")
			m.scene.gamePlayed = false
		}
		m.scene.menuPlayed = true
	case isGame && !m.scene.gamePlayed:
		span := m.startSceneSpan(prev, name)
		defer span.End()

		m.playRandom(m.opts.GameMusic)
		if m.scene.menuPlayed {
			m.fadeOut(m.opts.MenuMusic)
			log.Debug(log.CatScene, "Menu music removed")
			m.scene.menuPlayed = false
		}
		m.scene.gamePlayed = true
	case !isMenu && !isGame:
		m.scene.menuPlayed = false
		m.scene.gamePlayed = false
	}
}

func (m *Manager) startSceneSpan(from, to string) trace.Span {
	_, span := tracer.Start(context.Background(), "sound.scene_music",
		trace.WithAttributes(
			attribute.String("scene.from", from),
			attribute.String("scene.to", to),
		),
	)
	return span
}
