package levels

import (
	"time"

	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
)

// Audio is the slice of the sound manager a round drives.
type Audio interface {
	SetScene(name string)
	Play(name string)
	PlayRandom(cat sound.Category)
	PlayByCategory(cat sound.Category)
	Stop(cat sound.Category)
	StopCurrent()
	Pause(cat sound.Category)
	Unpause(cat sound.Category)
	FadeInRandom(cat sound.Category)
	FadeOut(cat sound.Category)
}

// Runner steps through a script's rounds in order, wrapping back to the
// first after the last.
type Runner struct {
	script  *Script
	round   int
	elapsed time.Duration
	next    int
}

func NewRunner(s *Script) *Runner {
	return &Runner{script: s}
}

// Round returns the round in progress. It is the zero Round for an empty
// script.
func (r *Runner) Round() Round {
	if len(r.script.Rounds) == 0 {
		return Round{}
	}
	return r.script.Rounds[r.round]
}

func (r *Runner) Elapsed() time.Duration {
	return r.elapsed
}

// Skip ends the current round early.
func (r *Runner) Skip() {
	if len(r.script.Rounds) == 0 {
		return
	}
	r.round = (r.round + 1) % len(r.script.Rounds)
	r.elapsed = 0
	r.next = 0
	log.Debug(log.CatGame, "Round started", "round", r.Round().Name, "scene", r.Round().Scene)
}

// Update reports the round's scene to a, fires every cue that came due
// within dt and moves on once the round's time is up. A round without a
// duration lasts until Skip.
func (r *Runner) Update(dt time.Duration, a Audio) {
	if len(r.script.Rounds) == 0 {
		return
	}
	round := r.Round()
	a.SetScene(round.Scene)

	r.elapsed += max(dt, 0)
	for r.next < len(round.Cues) && round.Cues[r.next].Offset() <= r.elapsed {
		fire(round.Cues[r.next], a)
		r.next++
	}

	if d := round.Duration(); d > 0 && r.elapsed >= d {
		r.Skip()
	}
}

func fire(c Cue, a Audio) {
	cat := sound.Category(c.Target)
	switch c.Action {
	case ActionPlay:
		a.Play(c.Target)
	case ActionPlayRandom:
		a.PlayRandom(cat)
	case ActionPlayCategory:
		a.PlayByCategory(cat)
	case ActionStop:
		a.Stop(cat)
	case ActionStopCurrent:
		a.StopCurrent()
	case ActionPause:
		a.Pause(cat)
	case ActionUnpause:
		a.Unpause(cat)
	case ActionFadeInRandom:
		a.FadeInRandom(cat)
	case ActionFadeOut:
		a.FadeOut(cat)
	}
}
