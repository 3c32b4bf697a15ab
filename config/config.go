package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ImagePath      string        `yaml:"image_path"`
	OutputDir      string        `yaml:"output_dir"`
	OutputFile     string        `yaml:"output_file"`
	Threshold      int           `yaml:"threshold"`
	MinRegionArea  int           `yaml:"min_region_area"`
	AllowTextOnly  bool          `yaml:"allow_text_only"`
	CleanupOnAbort bool          `yaml:"cleanup_on_abort"`
	Recognizer     string        `yaml:"recognizer"`
	VisionAPIKey   string        `yaml:"vision_api_key"`
	VisionEndpoint string        `yaml:"vision_endpoint"`
	VisionTimeout  time.Duration `yaml:"vision_timeout"`
	Languages      []string      `yaml:"tesseract_languages"`
	TelegramToken  string        `yaml:"telegram_token"`
	LogLevel       string        `yaml:"log_level"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		ImagePath:  "img1.jpg",
		OutputDir:  ".",
		OutputFile: "output.html",
		Threshold:  150,
		Recognizer: "vision",
		LogLevel:   "info",
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (path или CONFIG_FILE), затем переменные окружения.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.ImagePath, "IMAGE_PATH")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.OutputFile, "OUTPUT_FILE")
	setString(&c.Recognizer, "RECOGNIZER")
	setString(&c.VisionAPIKey, "VISION_API_KEY")
	setString(&c.VisionEndpoint, "VISION_ENDPOINT")
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("TESSERACT_LANGUAGES"); v != "" {
		c.Languages = strings.Split(v, ",")
	}

	var err error
	if c.Threshold, err = envInt("THRESHOLD", c.Threshold); err != nil {
		return err
	}
	if c.MinRegionArea, err = envInt("MIN_REGION_AREA", c.MinRegionArea); err != nil {
		return err
	}
	if c.AllowTextOnly, err = envBool("ALLOW_TEXT_ONLY", c.AllowTextOnly); err != nil {
		return err
	}
	if c.CleanupOnAbort, err = envBool("CLEANUP_ON_ABORT", c.CleanupOnAbort); err != nil {
		return err
	}
	if v := os.Getenv("VISION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VISION_TIMEOUT: %w", err)
		}
		c.VisionTimeout = d
	}
	return nil
}

// Validate проверяет корректность настроек
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("THRESHOLD must be between 0 and 255, got %d", c.Threshold)
	}
	if c.MinRegionArea < 0 {
		return fmt.Errorf("MIN_REGION_AREA must not be negative, got %d", c.MinRegionArea)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("OUTPUT_FILE is required")
	}
	if c.VisionTimeout < 0 {
		return fmt.Errorf("VISION_TIMEOUT must not be negative")
	}
	switch c.Recognizer {
	case "vision":
		if c.VisionAPIKey == "" {
			return fmt.Errorf("VISION_API_KEY is required for the vision recognizer")
		}
	case "tesseract":
	default:
		return fmt.Errorf("unknown RECOGNIZER %q", c.Recognizer)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
