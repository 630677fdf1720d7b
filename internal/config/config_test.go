package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/match"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults are applied to an empty file", func(t *testing.T) {
		// Given: a config file without any keys
		path := writeConfig(t, "{}\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: every field carries its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.False(t, conf.Pprof)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.JournalTTL)
		assert.Equal(t, entity.PlayerA, conf.Match.FirstTurn)
		assert.False(t, conf.Match.StrictPlacement)
		assert.False(t, conf.Match.PlacementLock)
	})

	t.Run("Values from the file override the defaults", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
socket-port: "7000"
pprof: true
redis:
  enabled: true
  host: redis
  journal-ttl: 10m
match:
  strict-placement: true
  placement-lock: true
  first-turn: B
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "7000", conf.SocketPort)
		assert.True(t, conf.Pprof)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 10*time.Minute, conf.Redis.JournalTTL)
		assert.True(t, conf.Match.StrictPlacement)
		assert.True(t, conf.Match.PlacementLock)
		assert.Equal(t, entity.PlayerB, conf.Match.FirstTurn)
	})

	t.Run("Unknown first turn is rejected", func(t *testing.T) {
		path := writeConfig(t, "match:\n  first-turn: C\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestMatch_EngineOptions(t *testing.T) {
	t.Run("Options are reflected by the engine", func(t *testing.T) {
		// Given: a strict, locked match config where B starts
		conf := Match{StrictPlacement: true, PlacementLock: true, FirstTurn: entity.PlayerB}

		// When: an engine is built from it
		engine := match.NewEngine(conf.EngineOptions()...)

		// Then: B holds the turn and occupied placements are rejected
		assert.Equal(t, entity.PlayerB, engine.Turn())

		at := entity.Coordinate{Row: 2, Col: 2}
		require.NoError(t, engine.PlacePiece(entity.PlayerA, "P1", entity.ShortRange, at))
		require.Error(t, engine.PlacePiece(entity.PlayerB, "P1", entity.ShortRange, at))
	})

	t.Run("Default config produces a lenient engine", func(t *testing.T) {
		conf := Match{FirstTurn: entity.PlayerA}

		engine := match.NewEngine(conf.EngineOptions()...)

		at := entity.Coordinate{Row: 2, Col: 2}
		require.NoError(t, engine.PlacePiece(entity.PlayerA, "P1", entity.ShortRange, at))
		require.NoError(t, engine.PlacePiece(entity.PlayerB, "P1", entity.ShortRange, at))
		assert.Equal(t, entity.PlayerA, engine.Turn())
	})
}
