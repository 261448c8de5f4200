package main

import (
	"github.com/milk9111/paintzone/assets"
	"github.com/milk9111/paintzone/sound/ebitenaudio"
	"github.com/milk9111/paintzone/soundbank"

	"github.com/spf13/cobra"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List the sound catalog",
	Long:  `Decode every sound in the configured catalog and list them by category with duration, volume, pitch and bus.`,
	RunE:  runSounds,
}

func init() {
	rootCmd.AddCommand(soundsCmd)
}

func runSounds(cmd *cobra.Command, args []string) error {
	dev := ebitenaudio.NewHeadlessDevice(assets.FS, cfg.Audio.SampleRate)
	catalog, err := loadCatalog(cmd.Context(), cfg.Audio.Catalog, dev)
	if err != nil {
		return err
	}
	return soundbank.Describe(cmd.OutOrStdout(), catalog)
}
