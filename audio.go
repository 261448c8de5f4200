package main

import (
	"context"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/paintzone/assets"
	"github.com/milk9111/paintzone/config"
	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
	"github.com/milk9111/paintzone/sound/ebitenaudio"
	"github.com/milk9111/paintzone/soundbank"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/milk9111/paintzone")

// audioStack owns the sound manager together with the device it plays on
// and the optional catalog watcher.
type audioStack struct {
	manager *sound.Manager
	device  *ebitenaudio.Device
	catalog string
	watcher *soundbank.Watcher
}

func newAudioStack(ctx context.Context, cfg config.Config) (*audioStack, error) {
	var dev *ebitenaudio.Device
	if cfg.Audio.Enabled {
		dev = ebitenaudio.NewDevice(audio.NewContext(cfg.Audio.SampleRate), assets.FS)
	} else {
		dev = ebitenaudio.NewHeadlessDevice(assets.FS, cfg.Audio.SampleRate)
		log.Info(log.CatAudio, "Audio output disabled")
	}

	catalog, err := loadCatalog(ctx, cfg.Audio.Catalog, dev)
	if err != nil {
		return nil, err
	}

	s := &audioStack{
		manager: sound.New(catalog, dev, cfg.SoundOptions()),
		device:  dev,
		catalog: cfg.Audio.Catalog,
	}

	if cfg.Audio.Watch {
		dir := filepath.Dir(soundbank.DiskPath(cfg.Audio.Catalog))
		w, err := soundbank.NewWatcher(dir)
		if err != nil {
			log.Warn(log.CatCatalog, "Catalog watch disabled", "dir", dir, "error", err)
		} else {
			s.watcher = w
		}
	}
	return s, nil
}

// loadCatalog tolerates bad entries: they are logged and the rest of the
// catalog is used. Only an unreadable file is an error.
func loadCatalog(ctx context.Context, name string, loader soundbank.ClipLoader) (*sound.Catalog, error) {
	catalog, err := soundbank.LoadCatalog(ctx, name, loader)
	if catalog == nil {
		return nil, err
	}
	if err != nil {
		log.Warn(log.CatCatalog, "Catalog loaded with errors", "catalog", name, "error", err)
	}
	return catalog, nil
}

// pollWatcher reloads the catalog for every pending change without
// blocking the frame.
func (s *audioStack) pollWatcher(ctx context.Context) {
	for s.watcher != nil {
		select {
		case path, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			if filepath.Base(path) == filepath.Base(soundbank.DiskPath(s.catalog)) {
				s.reload(ctx, path)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				s.watcher = nil
				return
			}
			log.Warn(log.CatCatalog, "Catalog watcher error", "error", err)
		default:
			return
		}
	}
}

func (s *audioStack) reload(ctx context.Context, path string) {
	ctx, span := tracer.Start(ctx, "catalog.reload", trace.WithAttributes(attribute.String("catalog.path", path)))
	defer span.End()

	catalog, err := loadCatalog(ctx, s.catalog, s.device)
	if err != nil {
		span.RecordError(err)
		log.Error(log.CatCatalog, "Catalog reload failed", "path", path, "error", err)
		return
	}
	s.manager.ReplaceCatalog(catalog)
}

func (s *audioStack) Close() {
	s.manager.Close()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Warn(log.CatCatalog, "Failed to close catalog watcher", "error", err)
		}
	}
}
