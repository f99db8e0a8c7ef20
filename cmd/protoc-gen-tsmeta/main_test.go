package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("TSMETA_CONFIG", "")
	assert.Equal(t, "a.yaml", findUserConfig([]string{"generate", "--config=a.yaml"}))
	assert.Equal(t, "b.toml", findUserConfig([]string{"--config", "b.toml", "describe"}))
	assert.Equal(t, "", findUserConfig([]string{"--config"}))

	t.Setenv("TSMETA_CONFIG", "env.json")
	assert.Equal(t, "env.json", findUserConfig(nil))
}
