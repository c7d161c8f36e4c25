package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the gateway needs at startup. Defaults are applied
// first, then overridden by READRALLY_* environment variables
// (e.g. READRALLY_HTTP_ADDR, READRALLY_ENGINE_PASSING_GRADE).
type Config struct {
	HTTPAddr  string `koanf:"http_addr"`
	PublicURL string `koanf:"public_url"`

	DBDriver string `koanf:"db_driver"` // sqlite|postgres
	DBDSN    string `koanf:"db_dsn"`

	AuthHMACSecret string `koanf:"auth_hmac_secret"`

	BlobBasePath string `koanf:"blob_base_path"` // book cover assets

	CORSOrigins []string `koanf:"cors_origins"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"` // json|console

	Engine Engine `koanf:"engine"`
}

// Engine carries the scoring and validation constants consumed by the quiz
// grader and the recommendation engine. None of these are hard-coded in the
// engine packages; tests and deployments inject their own values.
type Engine struct {
	NumChoices       int     `koanf:"num_choices"`        // options per multiple-choice question
	MinPoints        int     `koanf:"min_points"`         // per question
	MaxPoints        int     `koanf:"max_points"`         // per question
	MaxPromptLength  int     `koanf:"max_prompt_length"`  // runes
	MaxAnswerLength  int     `koanf:"max_answer_length"`  // long-answer response, runes
	PassingGrade     float64 `koanf:"passing_grade"`      // percentage a submission must reach
	MaxQuizAttempts  int     `koanf:"max_quiz_attempts"`  // per student per quiz
	CooldownHours    int     `koanf:"cooldown_hours"`     // between failed attempts
	MinLexileReviews int     `koanf:"min_lexile_reviews"` // reviews needed before adjusting the measure
	LexileWindowLow  int     `koanf:"lexile_window_low"`  // subtracted from the current measure
	LexileWindowHigh int     `koanf:"lexile_window_high"` // added to the current measure
}

func defaults() Config {
	return Config{
		HTTPAddr:     ":8080",
		DBDriver:     "sqlite",
		BlobBasePath: "./data",
		CORSOrigins:  []string{"http://localhost:3000"},
		LogLevel:     "info",
		LogFormat:    "json",
		Engine: Engine{
			NumChoices:       4,
			MinPoints:        1,
			MaxPoints:        10,
			MaxPromptLength:  500,
			MaxAnswerLength:  2000,
			PassingGrade:     70.0,
			MaxQuizAttempts:  3,
			CooldownHours:    24,
			MinLexileReviews: 3,
			LexileWindowLow:  100,
			LexileWindowHigh: 50,
		},
	}
}

// Load builds the effective configuration: struct defaults overridden by
// environment variables prefixed READRALLY_. Nested engine keys use the
// ENGINE_ segment, e.g. READRALLY_ENGINE_MAX_QUIZ_ATTEMPTS=5.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config defaults: %w", err)
	}

	if err := k.Load(env.Provider("READRALLY_", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	// Comma-separated env values for slice keys.
	if s, ok := k.Get("cors_origins").(string); ok {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("cors_origins", parts); err != nil {
			return Config{}, fmt.Errorf("config cors_origins: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot operate under.
func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported db_driver %q", c.DBDriver)
	}
	e := c.Engine
	if e.NumChoices < 2 {
		return fmt.Errorf("config: engine.num_choices must be >= 2, got %d", e.NumChoices)
	}
	if e.MinPoints < 1 || e.MaxPoints < e.MinPoints {
		return fmt.Errorf("config: engine points range [%d,%d] invalid", e.MinPoints, e.MaxPoints)
	}
	if e.PassingGrade <= 0 || e.PassingGrade > 100 {
		return fmt.Errorf("config: engine.passing_grade must be in (0,100], got %v", e.PassingGrade)
	}
	if e.MaxQuizAttempts < 1 {
		return fmt.Errorf("config: engine.max_quiz_attempts must be >= 1, got %d", e.MaxQuizAttempts)
	}
	if e.MinLexileReviews < 1 {
		return fmt.Errorf("config: engine.min_lexile_reviews must be >= 1, got %d", e.MinLexileReviews)
	}
	if e.LexileWindowLow < 0 || e.LexileWindowHigh < 0 {
		return fmt.Errorf("config: engine lexile window offsets [-%d,+%d] must be >= 0",
			e.LexileWindowLow, e.LexileWindowHigh)
	}
	return nil
}
