package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/kozaktomas/photo-arrange/internal/constants"
)

// Rendering engines.
const (
	EnginePDF   = "pdf"
	EngineLaTeX = "latex"
)

type Config struct {
	Render RenderConfig
	Output OutputConfig
	LaTeX  LaTeXConfig
}

type RenderConfig struct {
	Engine      string  // "pdf" (default) or "latex"
	DPI         float64 // resolution scaled images are rendered at (default 300)
	JPEGQuality int     // 1-100 (default 90)
}

type OutputConfig struct {
	Prefix string // file name prefix before the page number (default "ready_")
}

type LaTeXConfig struct {
	Binary string // lualatex executable (default "lualatex" from PATH)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envString returns the trimmed env var or the default when unset or blank.
func envString(key, defaultVal string) string {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	quality := envInt("PHOTO_ARRANGE_JPEG_QUALITY", constants.DefaultJPEGQuality)
	if quality > 100 {
		quality = 100
	}

	return &Config{
		Render: RenderConfig{
			Engine:      strings.ToLower(envString("PHOTO_ARRANGE_ENGINE", EnginePDF)),
			DPI:         envFloat("PHOTO_ARRANGE_DPI", constants.DefaultRenderDPI),
			JPEGQuality: quality,
		},
		Output: OutputConfig{
			Prefix: envString("PHOTO_ARRANGE_OUTPUT_PREFIX", constants.OutputPrefix),
		},
		LaTeX: LaTeXConfig{
			Binary: envString("LUALATEX_PATH", "lualatex"),
		},
	}
}
