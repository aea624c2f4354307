package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupDefaults(t *testing.T) {
	initialized = false
	ConfFile = "./does-not-exist.toml"
	Setup()
	assert.True(t, Settings.Search.UseBook)
	assert.Equal(t, 1<<22, Settings.Search.TTEntries)
	assert.Equal(t, 30, Settings.Eval.FullmovesEndgame)
}

func TestSetupIsIdempotent(t *testing.T) {
	initialized = false
	Setup()
	Settings.Eval.FullmovesEndgame = 99
	Setup()
	assert.Equal(t, 99, Settings.Eval.FullmovesEndgame)
}
