package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/paintzone/config"
	"github.com/milk9111/paintzone/levels"
	"github.com/milk9111/paintzone/log"
	"github.com/milk9111/paintzone/sound"
	"github.com/milk9111/paintzone/soundbank"
	"github.com/milk9111/paintzone/telemetry"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	scriptName string
	v          = config.New()
	cfg        config.Config
	shutdown   telemetry.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "paintzone",
	Short: "Paint Zone audio demo",
	Long: `Runs the Paint Zone audio demo: scripted menu, level and results rounds
drive the sound manager while the keyboard fires gameplay sounds directly.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runGame,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (YAML)")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.Bool("trace", false, "print trace spans to stderr")
	f.Bool("audio", true, "play through the audio device")
	f.Int("pool-size", sound.DefaultPoolSize, "initial number of audio channels")
	f.String("catalog", soundbank.DefaultCatalog, "sound catalog file")
	f.Bool("watch", false, "reload the sound catalog when it changes on disk")

	rootCmd.Flags().StringVar(&scriptName, "script", "demo.json", "round script in levels/")

	for key, flag := range map[string]string{
		"log_level":       "log-level",
		"trace":           "trace",
		"audio.enabled":   "audio",
		"audio.pool_size": "pool-size",
		"audio.catalog":   "catalog",
		"audio.watch":     "watch",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	log.Init(os.Stderr, cfg.LogLevel)

	shutdown, err = telemetry.Setup(cfg.Trace, os.Stderr)
	return err
}

func teardown(cmd *cobra.Command, args []string) error {
	if shutdown == nil {
		return nil
	}
	return shutdown(cmd.Context())
}

func runGame(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	script, err := levels.LoadScriptFromFS(scriptName)
	if err != nil {
		return fmt.Errorf("loading script %s: %w", scriptName, err)
	}

	stack, err := newAudioStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer stack.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width*2, cfg.Window.Height*2)
	ebiten.SetWindowTitle(cfg.Window.Title)

	return ebiten.RunGame(NewGame(ctx, cfg, stack, script))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
