package config

import (
	"os"
	"strconv"
)

// Config is the environment-sourced configuration surface. Only the
// generation credential matters for correctness, and even its absence is
// survivable: generation calls then report a configuration failure instead
// of crashing the process.
type Config struct {
	Host            string
	Port            int
	GeminiAPIKey    string
	TTSLanguageCode string
	TTSVoiceName    string
	Debug           bool
}

func Load() Config {
	cfg := Config{
		Host:            getenv("HOST", "127.0.0.1"),
		Port:            8000,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		TTSLanguageCode: getenv("TTS_LANGUAGE_CODE", "en-US"),
		TTSVoiceName:    os.Getenv("TTS_VOICE_NAME"),
		Debug:           os.Getenv("DEBUG") == "true",
	}
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
		cfg.Port = p
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
