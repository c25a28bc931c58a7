package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Recognition holds the session tunables.  Baseline values come from the
// embedded defaults.yaml; environment variables override them.
type Recognition struct {
	Threshold      float64 `yaml:"threshold"`
	ResizeMax      int     `yaml:"resize_max"`
	PollIntervalMS int     `yaml:"poll_interval_ms"`
	MinRegion      int     `yaml:"min_region"`
}

type defaults struct {
	Recognition Recognition `yaml:"recognition"`
}

type Config struct {
	Env    string // "dev" | "prod"
	DBPath string

	// RecognizerURL is the base URL of the recognition sidecar.
	RecognizerURL string

	// FramesDir is the spool directory the capture process writes frames to.
	FramesDir string

	Recognition Recognition
}

func FromEnv() Config {
	var d defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		// The file is embedded; this cannot fail outside a broken build.
		panic("config: unmarshal embedded defaults.yaml: " + err.Error())
	}

	env := strings.ToLower(getenvDefault("FACEMARK_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	rec := d.Recognition
	rec.Threshold = getenvFloat("FACEMARK_THRESHOLD", rec.Threshold)
	rec.ResizeMax = getenvInt("FACEMARK_RESIZE_MAX", rec.ResizeMax)
	rec.PollIntervalMS = getenvInt("FACEMARK_POLL_INTERVAL_MS", rec.PollIntervalMS)
	rec.MinRegion = getenvInt("FACEMARK_MIN_REGION", rec.MinRegion)

	return Config{
		Env:           env,
		DBPath:        getenvDefault("FACEMARK_DB_PATH", "./data/facemark.db"),
		RecognizerURL: getenvDefault("FACEMARK_RECOGNIZER_URL", "http://localhost:8200"),
		FramesDir:     getenvDefault("FACEMARK_FRAMES_DIR", "./frames"),
		Recognition:   rec,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
