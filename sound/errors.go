package sound

import "errors"

var (
	ErrSoundNotFound  = errors.New("sound: not found")
	ErrEmptyCategory  = errors.New("sound: category has no sounds")
	ErrNoClip         = errors.New("sound: definition has no clip")
	ErrDuplicateSound = errors.New("sound: duplicate sound name")
)
