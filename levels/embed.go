// Package levels holds the scripted rounds the demo shell plays through.
// Each round names the scene it runs in and a timeline of audio cues that
// stand in for gameplay (pickups, throws, deposits, the round timer).
package levels

import (
	"cmp"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"
)

//go:embed *.json
var LevelsFS embed.FS

type Action string

const (
	ActionPlay         Action = "play"
	ActionPlayRandom   Action = "play_random"
	ActionPlayCategory Action = "play_category"
	ActionStop         Action = "stop"
	ActionStopCurrent  Action = "stop_current"
	ActionPause        Action = "pause"
	ActionUnpause      Action = "unpause"
	ActionFadeInRandom Action = "fade_in_random"
	ActionFadeOut      Action = "fade_out"
)

var ErrUnknownAction = errors.New("levels: unknown cue action")

// Round is one scene of the demo loop.
type Round struct {
	Name  string `json:"name"`
	Scene string `json:"scene"`
	// Seconds is how long the round lasts before the next one starts.
	Seconds float64 `json:"seconds"`
	Cues    []Cue   `json:"cues,omitempty"`
}

// Cue fires Action on Target (a sound name or category) At seconds into
// the round.
type Cue struct {
	At     float64 `json:"at"`
	Action Action  `json:"action"`
	Target string  `json:"target,omitempty"`
}

type Script struct {
	Rounds []Round `json:"rounds"`
}

func (r Round) Duration() time.Duration {
	return time.Duration(r.Seconds * float64(time.Second))
}

func (c Cue) Offset() time.Duration {
	return time.Duration(c.At * float64(time.Second))
}

func LoadScriptFromFS(name string) (*Script, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a script and sorts each round's cues by time.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal script: %w", err)
	}
	for i := range s.Rounds {
		r := &s.Rounds[i]
		for _, c := range r.Cues {
			if !c.Action.valid() {
				return nil, fmt.Errorf("round %q: %w: %q", r.Name, ErrUnknownAction, c.Action)
			}
		}
		slices.SortStableFunc(r.Cues, func(a, b Cue) int { return cmp.Compare(a.At, b.At) })
	}
	return &s, nil
}

func (a Action) valid() bool {
	switch a {
	case ActionPlay, ActionPlayRandom, ActionPlayCategory, ActionStop, ActionStopCurrent,
		ActionPause, ActionUnpause, ActionFadeInRandom, ActionFadeOut:
		return true
	}
	return false
}
