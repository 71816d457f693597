// Package config layers CLI flags over .env-provided defaults over
// built-in defaults, the same three-tier precedence the teacher's
// terminal preview and dotenv helpers establish: godotenv.Load() populates
// process environment variables first (silently skipped if no .env file
// is present, matching the teacher's init()-time best-effort load), then
// flag parsing can override anything an environment variable set.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mvgraph/mapvec/internal/colorpoly"
	"github.com/mvgraph/mapvec/internal/raster"
	"github.com/mvgraph/mapvec/internal/text"
)

// Config holds every tunable the pipeline needs, fully resolved.
type Config struct {
	InputPath  string
	OutputPath string

	Threshold         raster.Threshold
	AdaptiveThreshold bool
	AdaptiveWindow    int
	AdaptiveOffset    float64
	AreaRatio         int
	Epsilon           float64

	Text         text.ClassifyParams
	StrokeWindow int
	ColorPoly    colorpoly.Params
	DebugDir     string
}

func defaults() Config {
	return Config{
		Threshold:      raster.DefaultThreshold,
		AdaptiveWindow: 15,
		AdaptiveOffset: 10,
		AreaRatio:      200,
		Epsilon:        0.5,
		Text:           text.DefaultClassifyParams(),
		StrokeWindow:   10,
		ColorPoly:      colorpoly.DefaultParams(),
	}
}

// envUint8 reads an environment variable as a fallback default for a
// flag, so a .env file loaded by LoadEnvFile can supply it without the
// caller having to pass it on the command line every time.
func envUint8(key string, fallback uint8) uint8 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
			return uint8(n)
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// LoadEnvFile best-effort loads a .env file into the process environment.
// A missing file is not an error: it mirrors godotenv.Load()'s default
// behavior of silently doing nothing when called with no arguments and no
// .env present.
func LoadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)
}

// Parse builds a Config from command-line arguments, with MAPVEC_*
// environment variables (typically supplied via a .env file) providing
// defaults for the numeric tuning flags not explicitly passed. The -o,
// -adaptive-threshold, -color-polygons and -debug-dir flags have no
// environment-variable fallback.
func Parse(args []string) (*Config, error) {
	LoadEnvFile(os.Getenv("MAPVEC_ENV_FILE"))
	d := defaults()

	fs := flag.NewFlagSet("mapvec", flag.ContinueOnError)
	out := fs.String("o", "", "output SVG path (required)")
	thB := fs.Int("threshold-b", int(envUint8("MAPVEC_THRESHOLD_B", d.Threshold.B)), "blue-channel black-layer threshold (0-255)")
	thG := fs.Int("threshold-g", int(envUint8("MAPVEC_THRESHOLD_G", d.Threshold.G)), "green-channel black-layer threshold (0-255)")
	thR := fs.Int("threshold-r", int(envUint8("MAPVEC_THRESHOLD_R", d.Threshold.R)), "red-channel black-layer threshold (0-255)")
	adaptive := fs.Bool("adaptive-threshold", false, "use a local-mean threshold instead of the fixed per-channel one, for scans with uneven lighting")
	adaptiveWindow := fs.Int("adaptive-window", envInt("MAPVEC_ADAPTIVE_WINDOW", d.AdaptiveWindow), "local-mean window size for -adaptive-threshold")
	adaptiveOffset := fs.Float64("adaptive-offset", envFloat("MAPVEC_ADAPTIVE_OFFSET", d.AdaptiveOffset), "luminance offset below the local mean that counts as black for -adaptive-threshold")
	areaRatio := fs.Int("area-ratio", envInt("MAPVEC_AREA_RATIO", d.AreaRatio), "discard components smaller than max-area/ratio (<=0 disables)")
	epsilon := fs.Float64("epsilon", envFloat("MAPVEC_EPSILON", d.Epsilon), "Douglas-Peucker simplification epsilon, in pixels")
	strokeWindow := fs.Int("stroke-window", envInt("MAPVEC_STROKE_WINDOW", d.StrokeWindow), "half-width of the stroke-width sampling window, in pixels")
	wordBoundary := fs.Float64("word-boundary-fraction", envFloat("MAPVEC_WORD_BOUNDARY_FRACTION", d.Text.WordBoundaryFraction), "area-jump fraction that splits a text cluster into separate words")
	colorPoly := fs.Bool("color-polygons", d.ColorPoly.Enabled, "recover filled colour polygons in addition to line geometry")
	debugDir := fs.String("debug-dir", "", "if set, dump intermediate rasters (black layer, text-erased layer, thinned skeleton) as PNGs under this directory")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one input image path, got %d", fs.NArg())
	}
	if *out == "" {
		return nil, fmt.Errorf("-o output path is required")
	}

	d.InputPath = fs.Arg(0)
	d.OutputPath = *out
	d.Threshold = raster.Threshold{B: uint8(*thB), G: uint8(*thG), R: uint8(*thR)}
	d.AdaptiveThreshold = *adaptive
	d.AdaptiveWindow = *adaptiveWindow
	d.AdaptiveOffset = *adaptiveOffset
	d.AreaRatio = *areaRatio
	d.Epsilon = *epsilon
	d.StrokeWindow = *strokeWindow
	d.Text.WordBoundaryFraction = *wordBoundary
	d.ColorPoly.Enabled = *colorPoly
	d.DebugDir = *debugDir

	return &d, nil
}
