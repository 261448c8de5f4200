// Package config provides configuration types and defaults for paintzone.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// PAINTZONE_AUDIO_POOL_SIZE.
const EnvPrefix = "PAINTZONE"

// Config holds all configuration options for paintzone.
type Config struct {
	Audio    AudioConfig  `mapstructure:"audio"`
	Scenes   SceneConfig  `mapstructure:"scenes"`
	Music    MusicConfig  `mapstructure:"music"`
	Window   WindowConfig `mapstructure:"window"`
	Trace    bool         `mapstructure:"trace"`
	LogLevel string       `mapstructure:"log_level"`
}

// AudioConfig configures the sound manager and its device.
type AudioConfig struct {
	// Enabled false runs the manager against a silent device.
	Enabled      bool          `mapstructure:"enabled"`
	SampleRate   int           `mapstructure:"sample_rate"`
	PoolSize     int           `mapstructure:"pool_size"`
	FadeDuration time.Duration `mapstructure:"fade_duration"`
	MasterVolume float64       `mapstructure:"master_volume"`
	// Buses maps bus name (music, sfx, ui) to gain.
	Buses   map[string]float64 `mapstructure:"buses"`
	Catalog string             `mapstructure:"catalog"`
	// Watch reloads the catalog when its file changes on disk.
	Watch bool `mapstructure:"watch"`
}

// SceneConfig names the scenes whose music the manager drives.
type SceneConfig struct {
	Menu string `mapstructure:"menu"`
	Game string `mapstructure:"game"`
}

type MusicConfig struct {
	MenuCategory string `mapstructure:"menu_category"`
	GameCategory string `mapstructure:"game_category"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Audio: AudioConfig{
			Enabled:      true,
			SampleRate:   44100,
			PoolSize:     sound.DefaultPoolSize,
			FadeDuration: sound.DefaultFadeDuration,
			MasterVolume: 1,
			Buses: map[string]float64{
				string(sound.BusMusic): 1,
				string(sound.BusSFX):   1,
				string(sound.BusUI):    1,
			},
			Catalog: "catalog.yaml",
		},
		Scenes: SceneConfig{
			Menu: "menu",
			Game: "level",
		},
		Music: MusicConfig{
			MenuCategory: string(sound.CategoryMenuMusic),
			GameCategory: string(sound.CategoryGameMusic),
		},
		Window: WindowConfig{
			Width:  640,
			Height: 360,
			Title:  "Paint Zone",
		},
		LogLevel: "info",
	}
}

// New returns a viper instance seeded with Default and reading
// PAINTZONE_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.pool_size", d.Audio.PoolSize)
	v.SetDefault("audio.fade_duration", d.Audio.FadeDuration)
	v.SetDefault("audio.master_volume", d.Audio.MasterVolume)
	v.SetDefault("audio.buses", d.Audio.Buses)
	v.SetDefault("audio.catalog", d.Audio.Catalog)
	v.SetDefault("audio.watch", d.Audio.Watch)
	v.SetDefault("scenes.menu", d.Scenes.Menu)
	v.SetDefault("scenes.game", d.Scenes.Game)
	v.SetDefault("music.menu_category", d.Music.MenuCategory)
	v.SetDefault("music.game_category", d.Music.GameCategory)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("trace", d.Trace)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the
// result. An empty path skips the file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "Config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Audio.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("config: audio.pool_size must not be negative, got %d", c.Audio.PoolSize))
	}
	if c.Audio.FadeDuration < 0 {
		errs = append(errs, fmt.Errorf("config: audio.fade_duration must not be negative, got %s", c.Audio.FadeDuration))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("config: audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	for name := range c.Audio.Buses {
		switch sound.Bus(name) {
		case sound.BusMusic, sound.BusSFX, sound.BusUI:
		default:
			errs = append(errs, fmt.Errorf("config: unknown bus %q", name))
		}
	}
	for _, cat := range []string{c.Music.MenuCategory, c.Music.GameCategory} {
		if !sound.Category(cat).Known() {
			errs = append(errs, fmt.Errorf("config: unknown music category %q", cat))
		}
	}
	return errors.Join(errs...)
}

// SoundOptions maps the audio settings onto sound.Options.
func (c Config) SoundOptions() sound.Options {
	gains := make(map[sound.Bus]float64, len(c.Audio.Buses))
	for name, g := range c.Audio.Buses {
		gains[sound.Bus(name)] = g
	}
	return sound.Options{
		PoolSize:     c.Audio.PoolSize,
		FadeDuration: c.Audio.FadeDuration,
		MenuScene:    c.Scenes.Menu,
		GameScene:    c.Scenes.Game,
		MenuMusic:    sound.Category(c.Music.MenuCategory),
		GameMusic:    sound.Category(c.Music.GameCategory),
		Mixer:        sound.NewMixer(c.Audio.MasterVolume, gains),
	}
}
