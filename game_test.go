package main

import (
	"testing"

	"github.com/milk9111/paintzone/config"
	"github.com/milk9111/paintzone/sound"
	"github.com/stretchr/testify/assert"
)

func TestMusicCategories(t *testing.T) {
	tests := []struct {
		name     string
		menu     string
		game     string
		wantMenu sound.Category
		wantGame sound.Category
	}{
		{"defaults", "", "", sound.CategoryMenuMusic, sound.CategoryGameMusic},
		{"configured", "victory", "defeat", sound.CategoryVictory, sound.CategoryDefeat},
		{"game only", "", "victory", sound.CategoryMenuMusic, sound.CategoryVictory},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Music.MenuCategory = tc.menu
			cfg.Music.GameCategory = tc.game

			menu, game := musicCategories(cfg)
			assert.Equal(t, tc.wantMenu, menu)
			assert.Equal(t, tc.wantGame, game)
		})
	}
}
