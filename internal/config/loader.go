package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DispatchConfig selects the task runner backing the event bus.
type DispatchConfig struct {
	// Mode: "inline" runs handlers on the publishing goroutine, "serial"
	// uses one dispatch goroutine, "pool" uses a worker pool.
	Mode      string `mapstructure:"mode"`
	QueueSize int    `mapstructure:"queue_size"`
	Workers   int    `mapstructure:"workers"`
}

type DatabaseConfig struct {
	Dir      string `mapstructure:"dir"`
	InMemory bool   `mapstructure:"in_memory"`
}

type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"` // e.g., 0.0.0.0:9090
}

type NodeConfig struct {
	LogLevel      string         `mapstructure:"log_level"`
	SeenCacheSize int            `mapstructure:"seen_cache_size"`
	Dispatch      DispatchConfig `mapstructure:"dispatch"`
	Database      DatabaseConfig `mapstructure:"database"`
	Metrics       MetricsConfig  `mapstructure:"metrics"`
}

func Default() *NodeConfig {
	return &NodeConfig{
		LogLevel:      "info",
		SeenCacheSize: 1024,
		Dispatch:      DispatchConfig{Mode: "serial", QueueSize: 256, Workers: 4},
		Database:      DatabaseConfig{Dir: "./data"},
		Metrics:       MetricsConfig{Enabled: false, ListenAddr: ":9095"},
	}
}

func Load(path string) (*NodeConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("seen_cache_size", def.SeenCacheSize)
	v.SetDefault("dispatch.mode", def.Dispatch.Mode)
	v.SetDefault("dispatch.queue_size", def.Dispatch.QueueSize)
	v.SetDefault("dispatch.workers", def.Dispatch.Workers)
	v.SetDefault("database.dir", def.Database.Dir)
	v.SetDefault("metrics.listen_addr", def.Metrics.ListenAddr)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg NodeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *NodeConfig) Validate() error {
	switch c.Dispatch.Mode {
	case "inline", "serial", "pool":
	default:
		return fmt.Errorf("invalid dispatch.mode %q (want inline, serial or pool)", c.Dispatch.Mode)
	}
	if c.Dispatch.QueueSize < 0 {
		return fmt.Errorf("dispatch.queue_size must be >= 0")
	}
	if c.Dispatch.Mode == "pool" && c.Dispatch.Workers < 1 {
		return fmt.Errorf("dispatch.workers must be >= 1 for pool mode")
	}
	if c.SeenCacheSize < 1 {
		return fmt.Errorf("seen_cache_size must be >= 1")
	}
	if !c.Database.InMemory && c.Database.Dir == "" {
		return fmt.Errorf("database.dir is required unless database.in_memory is set")
	}
	return nil
}
