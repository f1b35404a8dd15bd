package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// Telegram transport
	BotToken string `mapstructure:"BOT_TOKEN" validate:"required"`
	// Base URL of a self-hosted Bot API server (e.g. http://localhost:8081).
	// Empty means the public api.telegram.org endpoint with its upload limits.
	TelegramAPIURL string `mapstructure:"TELEGRAM_API_URL" validate:"omitempty,url"`

	// Extraction / download
	YtdlpPath       string `mapstructure:"YTDLP_PATH"`
	ScratchDir      string `mapstructure:"SCRATCH_DIR"`
	DownloadWorkers int    `mapstructure:"DOWNLOAD_WORKERS" validate:"min=1"`

	// Request cache
	CacheCapacity int `mapstructure:"CACHE_CAPACITY" validate:"min=1"`

	// Selection behavior
	AutoSelect          bool   `mapstructure:"AUTO_SELECT"`
	PreferredResolution string `mapstructure:"PREFERRED_RESOLUTION"`
	VideoIDLength       int    `mapstructure:"VIDEO_ID_LENGTH" validate:"min=1"`

	// Operational status endpoint. 0 disables it.
	StatusPort int `mapstructure:"STATUS_PORT"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("YTDLP_PATH", "yt-dlp")
	viper.SetDefault("SCRATCH_DIR", "downloads")
	viper.SetDefault("DOWNLOAD_WORKERS", 2)
	viper.SetDefault("CACHE_CAPACITY", 256)
	viper.SetDefault("PREFERRED_RESOLUTION", "720p")
	viper.SetDefault("VIDEO_ID_LENGTH", 11)
	viper.SetDefault("STATUS_PORT", 8090)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration",
		"scratch_dir", cfg.ScratchDir,
		"workers", cfg.DownloadWorkers,
		"cache_capacity", cfg.CacheCapacity,
		"auto_select", cfg.AutoSelect,
		"self_hosted_api", cfg.TelegramAPIURL != "")

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
