package soundbank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/milk9111/paintzone/soundbank")

var (
	ErrMissingName     = errors.New("soundbank: missing name")
	ErrUnknownCategory = errors.New("soundbank: unknown category")
	ErrUnknownBus      = errors.New("soundbank: unknown bus")
)

// ClipLoader decodes the audio file a catalog entry points at.
type ClipLoader interface {
	LoadClip(path string) (sound.Clip, error)
}

// Build turns spec into definitions, loading every clip through loader.
// Entries that cannot be built are skipped and reported together in the
// returned error; the definitions that did build are always returned.
func Build(ctx context.Context, spec CatalogSpec, loader ClipLoader) ([]sound.Definition, error) {
	_, span := tracer.Start(ctx, "soundbank.build",
		trace.WithAttributes(attribute.Int("soundbank.entries", len(spec.Sounds))),
	)
	defer span.End()

	defs := make([]sound.Definition, 0, len(spec.Sounds))
	var errs []error
	for i, s := range spec.Sounds {
		def, err := buildDefinition(s, loader)
		if err != nil {
			errs = append(errs, fmt.Errorf("soundbank: entry %d (%q): %w", i, s.Name, err))
			continue
		}
		defs = append(defs, def)
	}

	span.SetAttributes(attribute.Int("soundbank.built", len(defs)))
	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog entries skipped")
		log.Warn(log.CatCatalog, "Catalog entries skipped", "skipped", len(errs), "error", err)
	}
	log.Info(log.CatCatalog, "Catalog built", "sounds", len(defs))
	return defs, err
}

// LoadCatalog reads the named catalog file and builds a sound.Catalog from
// it.
func LoadCatalog(ctx context.Context, name string, loader ClipLoader) (*sound.Catalog, error) {
	spec, err := LoadCatalogSpec(name)
	if err != nil {
		return nil, err
	}
	defs, err := Build(ctx, spec, loader)
	return sound.NewCatalog(defs), err
}

func buildDefinition(s SoundSpec, loader ClipLoader) (sound.Definition, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return sound.Definition{}, ErrMissingName
	}
	cat := sound.Category(s.Category)
	if !cat.Known() {
		return sound.Definition{}, fmt.Errorf("%w: %q", ErrUnknownCategory, s.Category)
	}
	bus, err := parseBus(s.Bus, cat)
	if err != nil {
		return sound.Definition{}, err
	}
	if s.File == "" {
		return sound.Definition{}, sound.ErrNoClip
	}
	clip, err := loader.LoadClip(s.File)
	if err != nil {
		return sound.Definition{}, err
	}

	return sound.Definition{
		Name:        name,
		Category:    cat,
		Clip:        clip,
		Volume:      s.VolumeOrDefault(),
		Pitch:       s.Pitch,
		Loop:        s.Loop,
		Bus:         bus,
		PlayAtStart: s.PlayAtStart,
	}, nil
}

func parseBus(s string, cat sound.Category) (sound.Bus, error) {
	switch b := sound.Bus(strings.ToLower(strings.TrimSpace(s))); b {
	case sound.BusNone:
		return cat.DefaultBus(), nil
	case sound.BusMusic, sound.BusSFX, sound.BusUI:
		return b, nil
	default:
		return sound.BusNone, fmt.Errorf("%w: %q", ErrUnknownBus, s)
	}
}
