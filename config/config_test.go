package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("VISION_API_KEY", "k")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "img1.jpg", cfg.ImagePath)
	require.Equal(t, "output.html", cfg.OutputFile)
	require.Equal(t, 150, cfg.Threshold)
	require.False(t, cfg.AllowTextOnly)
	require.Equal(t, "vision", cfg.Recognizer)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "doc2html.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
threshold: 120
recognizer: tesseract
allow_text_only: true
vision_timeout: 30s
tesseract_languages: [eng, rus]
`), 0o644))
	t.Setenv("THRESHOLD", "100")
	t.Setenv("OUTPUT_DIR", "out")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 100, cfg.Threshold)
	require.Equal(t, "tesseract", cfg.Recognizer)
	require.True(t, cfg.AllowTextOnly)
	require.Equal(t, 30*time.Second, cfg.VisionTimeout)
	require.Equal(t, []string{"eng", "rus"}, cfg.Languages)
	require.Equal(t, "out", cfg.OutputDir)
}

func TestLoad_InvalidEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RECOGNIZER", "tesseract")
	t.Setenv("ALLOW_TEXT_ONLY", "maybe")

	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"ok", func(c *Config) { c.VisionAPIKey = "k" }, false},
		{"missing key", func(c *Config) {}, true},
		{"threshold too high", func(c *Config) { c.Recognizer = "tesseract"; c.Threshold = 256 }, true},
		{"negative area", func(c *Config) { c.Recognizer = "tesseract"; c.MinRegionArea = -1 }, true},
		{"unknown recognizer", func(c *Config) { c.Recognizer = "magic" }, true},
		{"no output file", func(c *Config) { c.Recognizer = "tesseract"; c.OutputFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
