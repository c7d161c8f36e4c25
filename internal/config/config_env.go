package config

import "strings"

// envTransform maps READRALLY_* environment variables onto koanf paths.
// The ENGINE_ segment becomes the nested engine section; everything else is a
// flat top-level key. Examples:
//
//	READRALLY_HTTP_ADDR                 -> http_addr
//	READRALLY_DB_DRIVER                 -> db_driver
//	READRALLY_ENGINE_PASSING_GRADE      -> engine.passing_grade
//	READRALLY_ENGINE_MAX_QUIZ_ATTEMPTS  -> engine.max_quiz_attempts
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "READRALLY_"))
	if rest, ok := strings.CutPrefix(key, "engine_"); ok {
		return "engine." + rest
	}
	return key
}
