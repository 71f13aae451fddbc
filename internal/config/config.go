// SPDX-License-Identifier: EPL-2.0

// Package config reads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ik5/noisemix/engine"
)

const Prefix = "NOISEMIX_"

type Config struct {
	// SoundDirs are scanned in order after the bundled sounds; later
	// directories override earlier ones.
	SoundDirs []string
	Watch     bool

	SampleRate    int
	Channels      int
	BufferFrames  int
	Fade          time.Duration
	MaxTracks     int
	MasterVolume  float64
	DefaultVolume float64

	// Backend selects the output device: oto, beep or none.
	Backend string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Engine converts the audio settings for engine.New.
func (c *Config) Engine() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.SampleRate = c.SampleRate
	cfg.Channels = c.Channels
	cfg.BufferFrames = c.BufferFrames
	cfg.Fade = c.Fade
	cfg.MaxTracks = c.MaxTracks
	cfg.MasterVolume = float32(c.MasterVolume)
	cfg.DefaultVolume = float32(c.DefaultVolume)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

// DefaultSoundDir is where user sounds live when NOISEMIX_SOUND_DIRS is unset.
func DefaultSoundDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "noisemix", "sounds")
	}
	return "sounds"
}

// Load reads the given .env files, or .env in the working directory when
// none are named, and then the environment. Variables already set in the
// environment win over the files, and a missing file is not an error.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)

	def := engine.DefaultConfig()

	return &Config{
		SoundDirs:     splitList(getEnv("SOUND_DIRS", DefaultSoundDir())),
		Watch:         getEnvBool("WATCH", true),
		SampleRate:    getEnvInt("SAMPLE_RATE", def.SampleRate),
		Channels:      getEnvInt("CHANNELS", def.Channels),
		BufferFrames:  getEnvInt("BUFFER_FRAMES", def.BufferFrames),
		Fade:          getEnvDuration("FADE", def.Fade),
		MaxTracks:     getEnvInt("MAX_TRACKS", def.MaxTracks),
		MasterVolume:  getEnvFloat("MASTER_VOLUME", float64(def.MasterVolume)),
		DefaultVolume: getEnvFloat("DEFAULT_VOLUME", float64(def.DefaultVolume)),
		Backend:       strings.ToLower(getEnv("BACKEND", "oto")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
