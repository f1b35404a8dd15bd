package config

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Success_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BOT_TOKEN", "123456:ABC-DEF")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "123456:ABC-DEF", cfg.BotToken)
	require.Equal(t, "downloads", cfg.ScratchDir)
	require.Equal(t, 2, cfg.DownloadWorkers)
	require.Equal(t, 256, cfg.CacheCapacity)
	require.Equal(t, "720p", cfg.PreferredResolution)
	require.Equal(t, 11, cfg.VideoIDLength)
	require.False(t, cfg.AutoSelect)
}

func TestLoadConfig_MissingToken(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_SelfHostedAPI(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BOT_TOKEN", "123456:ABC-DEF")
	t.Setenv("TELEGRAM_API_URL", "http://localhost:8081")
	t.Setenv("DOWNLOAD_WORKERS", "4")
	t.Setenv("AUTO_SELECT", "true")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "http://localhost:8081", cfg.TelegramAPIURL)
	require.Equal(t, 4, cfg.DownloadWorkers)
	require.True(t, cfg.AutoSelect)
}

func TestLoadConfig_InvalidAPIURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BOT_TOKEN", "123456:ABC-DEF")
	t.Setenv("TELEGRAM_API_URL", "not a url")

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}
