package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertCoop/ontologies-linked-data/flex"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ldflex.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, lvl)
	assert.Empty(t, cfg.ProfileNames())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database  = "ontologies.db"
log_level = "debug"

[profiles]
summary = "only(acronym, name)"
full    = "all except(submissions)"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ontologies.db", cfg.Database)
	assert.Equal(t, "json", cfg.Format, "missing keys keep their defaults")
	assert.Equal(t, []string{"full", "summary"}, cfg.ProfileNames())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, lvl)

	opts, err := cfg.Profile("full")
	require.NoError(t, err)
	assert.Equal(t, flex.Options{All: true, Except: []string{"submissions"}}, opts)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `database = `, "load config"},
		{"unknown key", `databse = "x.db"`, "unknown keys: databse"},
		{"bad format", `format = "yaml"`, `unknown format "yaml"`},
		{"bad level", `log_level = "loud"`, "log_level"},
		{"bad profile", "[profiles]\nbroken = \"only(\"", "profile broken"},
		{"empty database", `database = ""`, "database must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestProfile_NotFound(t *testing.T) {
	cfg := Default()
	cfg.Profiles = map[string]string{"summary": "only(name)"}

	_, err := cfg.Profile("full")
	var perr *ProfileNotFoundError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []string{"summary"}, perr.Available)
	assert.Contains(t, err.Error(), "available: summary")

	_, err = Default().Profile("x")
	assert.ErrorContains(t, err, "none defined")
}
