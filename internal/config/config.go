package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Phonetics PhoneticsConfig `yaml:"phonetics"`
	Rhyme     RhymeConfig     `yaml:"rhyme"`
	Meter     MeterConfig     `yaml:"meter"`
	Forms     FormsConfig     `yaml:"forms"`
	Rules     RulesConfig     `yaml:"rules"`
	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// PhoneticsConfig selects the phonetic source that annotates raw poems.
type PhoneticsConfig struct {
	Source                string        `yaml:"source"                  env:"PROSODY_SOURCE"                  env-default:"prosodic"`
	URL                   string        `yaml:"url"                     env:"PROSODY_PROSODIC_URL"            env-default:"http://127.0.0.1:8181"`
	Timeout               time.Duration `yaml:"timeout"                 env:"PROSODY_PROSODIC_TIMEOUT"        env-default:"30s"`
	ImproveVowelSyllables bool          `yaml:"improve_vowel_syllables" env:"PROSODY_IMPROVE_SYLLABIFICATION"`
	Model                 string        `yaml:"model"                   env:"PROSODY_LLM_MODEL"`
	APIKey                string        `yaml:"api_key"                 env:"ANTHROPIC_API_KEY"`
	CacheDir              string        `yaml:"cache_dir"               env:"PROSODY_CACHE_DIR"`
	NoCache               bool          `yaml:"no_cache"                env:"PROSODY_NO_CACHE"`
}

// RhymeConfig controls rhyme grouping.
type RhymeConfig struct {
	Grouping    string  `yaml:"grouping"     env:"PROSODY_RHYME_GROUPING"     env-default:"union"`
	MaxDistance float64 `yaml:"max_distance" env:"PROSODY_RHYME_MAX_DISTANCE"`
}

// MeterConfig holds the stress markers used in line visualizations.
type MeterConfig struct {
	StressedMarker   string `yaml:"stressed_marker"   env:"PROSODY_STRESSED_MARKER"   env-default:"/"`
	UnstressedMarker string `yaml:"unstressed_marker" env:"PROSODY_UNSTRESSED_MARKER" env-default:"˘"`
}

// FormsConfig points at an optional catalog of extra fixed forms.
type FormsConfig struct {
	File string `yaml:"file" env:"PROSODY_FORMS_FILE"`
}

// RulesConfig turns rules off by name.
type RulesConfig struct {
	Disabled []string `yaml:"disabled" env:"PROSODY_RULES_DISABLED" env-separator:","`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"PROSODY_SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"PROSODY_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"PROSODY_SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"PROSODY_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"PROSODY_SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"PROSODY_CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"PROSODY_CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"PROSODY_CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"PROSODY_CORS_MAX_AGE"         env-default:"86400"`
}

// OriginList returns AllowedOrigins split on commas
func (c CORSConfig) OriginList() []string {
	return splitList(c.AllowedOrigins)
}

// MethodList returns AllowedMethods split on commas
func (c CORSConfig) MethodList() []string {
	return splitList(c.AllowedMethods)
}

// HeaderList returns AllowedHeaders split on commas
func (c CORSConfig) HeaderList() []string {
	return splitList(c.AllowedHeaders)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"PROSODY_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"PROSODY_LOG_FORMAT" env-default:"text"`
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
