package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.Engine.NumChoices)
	assert.Equal(t, 70.0, cfg.Engine.PassingGrade)
	assert.Equal(t, 3, cfg.Engine.MaxQuizAttempts)
	assert.Equal(t, 24, cfg.Engine.CooldownHours)
	assert.Equal(t, 3, cfg.Engine.MinLexileReviews)
	assert.Equal(t, 100, cfg.Engine.LexileWindowLow)
	assert.Equal(t, 50, cfg.Engine.LexileWindowHigh)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("READRALLY_HTTP_ADDR", ":9191")
	t.Setenv("READRALLY_DB_DRIVER", "postgres")
	t.Setenv("READRALLY_ENGINE_PASSING_GRADE", "80")
	t.Setenv("READRALLY_ENGINE_MAX_QUIZ_ATTEMPTS", "5")
	t.Setenv("READRALLY_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 80.0, cfg.Engine.PassingGrade)
	assert.Equal(t, 5, cfg.Engine.MaxQuizAttempts)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)

	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Engine.NumChoices)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	t.Setenv("READRALLY_DB_DRIVER", "oracle")
	_, err := Load()
	assert.ErrorContains(t, err, "db_driver")
}

func TestValidate(t *testing.T) {
	base := defaults()

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("passing grade bounds", func(t *testing.T) {
		c := base
		c.Engine.PassingGrade = 0
		assert.Error(t, c.Validate())
		c.Engine.PassingGrade = 101
		assert.Error(t, c.Validate())
		c.Engine.PassingGrade = 100
		assert.NoError(t, c.Validate())
	})

	t.Run("attempt budget", func(t *testing.T) {
		c := base
		c.Engine.MaxQuizAttempts = 0
		assert.Error(t, c.Validate())
	})

	t.Run("points range", func(t *testing.T) {
		c := base
		c.Engine.MinPoints = 5
		c.Engine.MaxPoints = 2
		assert.Error(t, c.Validate())
	})

	t.Run("lexile window offsets", func(t *testing.T) {
		c := base
		c.Engine.LexileWindowLow = -1
		assert.Error(t, c.Validate())

		// Zero offsets are a legitimate configuration.
		c = base
		c.Engine.LexileWindowLow = 0
		c.Engine.LexileWindowHigh = 0
		assert.NoError(t, c.Validate())
	})
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "http_addr", envTransform("READRALLY_HTTP_ADDR"))
	assert.Equal(t, "engine.max_quiz_attempts", envTransform("READRALLY_ENGINE_MAX_QUIZ_ATTEMPTS"))
	assert.Equal(t, "engine.passing_grade", envTransform("READRALLY_ENGINE_PASSING_GRADE"))
}
