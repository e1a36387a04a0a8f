package config

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"noventagrados/history"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "checkpoint", cfg.UndoMode)
		require.Equal(t, ":8080", cfg.Addr)
		require.Equal(t, "en", cfg.Lang)
		require.Equal(t, "info", cfg.LogLevel)
		require.True(t, cfg.LogPretty)
		require.False(t, cfg.Web)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("NOVENTA_UNDO_MODE", "jugadas")
		t.Setenv("NOVENTA_LANG", "es")
		t.Setenv("NOVENTA_LOG_PRETTY", "false")
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "jugadas", cfg.UndoMode)
		require.Equal(t, "es", cfg.Lang)
		require.False(t, cfg.LogPretty)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv("NOVENTA_LOG_PRETTY", "sometimes")
		_, err := Load()
		require.ErrorContains(t, err, "parse env:")
	})
}

func TestParse(t *testing.T) {
	t.Run("flags override the environment", func(t *testing.T) {
		t.Setenv("NOVENTA_ADDR", ":9000")
		t.Setenv("NOVENTA_LOG_LEVEL", "warn")
		cfg, err := Parse("test", []string{"-addr", ":9001", "-web"})
		require.NoError(t, err)
		require.Equal(t, ":9001", cfg.Addr)
		require.True(t, cfg.Web)
		require.Equal(t, zerolog.WarnLevel, cfg.Level, "Unset flags keep the environment value")
		require.Equal(t, history.Checkpoint, cfg.Strategy)
	})

	t.Run("positional undo mode", func(t *testing.T) {
		cfg, err := Parse("test", []string{"-mode", "checkpoint", "jugadas"})
		require.NoError(t, err)
		require.Equal(t, "jugadas", cfg.UndoMode)
		require.Equal(t, history.Replay, cfg.Strategy)
	})

	t.Run("too many positional arguments", func(t *testing.T) {
		_, err := Parse("test", []string{"replay", "extra"})
		require.ErrorContains(t, err, "unexpected arguments")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := Parse("test", []string{"-nope"})
		require.ErrorContains(t, err, "parse flags")
	})
}

func TestValidate(t *testing.T) {
	t.Run("collecting every problem", func(t *testing.T) {
		cfg := Config{UndoMode: "rewind", LogLevel: "loud", Lang: "e!", Web: true}
		err := cfg.Validate()
		require.ErrorIs(t, err, history.ErrUnknownStrategy)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		require.Len(t, merr.Errors, 4)
	})

	t.Run("filling parsed values", func(t *testing.T) {
		cfg := Config{UndoMode: "Moves", LogLevel: "debug", Lang: "es-ES", Addr: ":80"}
		require.NoError(t, cfg.Validate())
		require.Equal(t, history.Replay, cfg.Strategy)
		require.Equal(t, zerolog.DebugLevel, cfg.Level)
	})
}
