package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// SeedConfig controls the synthetic table loaded at startup.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// UploadConfig bounds bulk upload payloads.
type UploadConfig struct {
	MaxSizeMB int64 `mapstructure:"max_size_mb"`
}

func (u *UploadConfig) MaxSizeBytes() int64 {
	return u.MaxSizeMB << 20
}
