package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type DBConf struct {
	DSN                   string `mapstructure:"dsn"`
	MaxOpenConns          int    `mapstructure:"max_open_conns"`
	IdleTimeoutSeconds    int    `mapstructure:"idle_timeout_seconds"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`
}

type AWSConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type CDNConf struct {
	Domain string `mapstructure:"domain"`
}

type MediaConf struct {
	PresignTTL  int `mapstructure:"presign_ttl_seconds"`
	MaxUploadMB int `mapstructure:"max_upload_mb"`
}

type FFmpegConf struct {
	Bin string `mapstructure:"bin"`
}

type RedisConf struct {
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	AuthLimit     int    `mapstructure:"auth_rate_limit"`
	AuthWindowSec int    `mapstructure:"auth_rate_window_seconds"`
}

type Config struct {
	App    AppConf    `mapstructure:"app"`
	DB     DBConf     `mapstructure:"db"`
	AWS    AWSConf    `mapstructure:"aws"`
	CDN    CDNConf    `mapstructure:"cdn"`
	Media  MediaConf  `mapstructure:"media"`
	FFmpeg FFmpegConf `mapstructure:"ffmpeg"`
	Redis  RedisConf  `mapstructure:"redis"`

	// derived
	ShutdownTimeout time.Duration
	PresignTTL      time.Duration
	AuthRateWindow  time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 10
	}
	if cfg.DB.IdleTimeoutSeconds == 0 {
		cfg.DB.IdleTimeoutSeconds = 60
	}
	if cfg.DB.ConnectTimeoutSeconds == 0 {
		cfg.DB.ConnectTimeoutSeconds = 5
	}
	if cfg.Media.PresignTTL == 0 {
		cfg.Media.PresignTTL = 3600
	}
	if cfg.Media.MaxUploadMB == 0 {
		cfg.Media.MaxUploadMB = 100
	}
	if cfg.FFmpeg.Bin == "" {
		cfg.FFmpeg.Bin = "ffmpeg"
	}
	if cfg.Redis.AuthLimit == 0 {
		cfg.Redis.AuthLimit = 20
	}
	if cfg.Redis.AuthWindowSec == 0 {
		cfg.Redis.AuthWindowSec = 60
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.PresignTTL = time.Duration(cfg.Media.PresignTTL) * time.Second
	cfg.AuthRateWindow = time.Duration(cfg.Redis.AuthWindowSec) * time.Second
	return &cfg, nil
}
