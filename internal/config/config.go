package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Environment string                       `mapstructure:"environment"`
	MongoDB     MongoDBConfig                `mapstructure:"mongodb"`
	Log         LogConfig                    `mapstructure:"log"`
	Scheduler   SchedulerConfig              `mapstructure:"scheduler"`
	Templates   map[string]TemplateConfig    `mapstructure:"template_tasks"`
	ExportPaths map[string]ExportPathsConfig `mapstructure:"export_paths"`
}

// MongoDBConfig holds the document store connection settings
type MongoDBConfig struct {
	URI        string `mapstructure:"uri"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	Database   string `mapstructure:"database"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	AuthSource string `mapstructure:"auth_source"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SchedulerConfig controls recurring dispatch. An empty cron spec means a
// single execution run.
type SchedulerConfig struct {
	CronSpec string `mapstructure:"cron_spec"`
}

// TemplateConfig lists the template task IDs enabled for one environment
type TemplateConfig struct {
	TaskIDs []int `mapstructure:"task_ids"`
}

// ExportPathsConfig holds per-OS export directories for one environment
type ExportPathsConfig struct {
	Windows string `mapstructure:"windows"`
	Linux   string `mapstructure:"linux"`
}

// Load loads the configuration from a YAML file
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("mongodb.auth_source", "admin")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// TemplateTaskIDs returns the template task ID allow-list for the current
// environment. A missing section yields an empty list.
func (c *Config) TemplateTaskIDs() []int {
	tpl, ok := c.Templates[c.Environment]
	if !ok {
		return nil
	}
	return tpl.TaskIDs
}

// ExportPath resolves the export directory for the current environment and
// host operating system.
func (c *Config) ExportPath() (string, error) {
	paths, ok := c.ExportPaths[c.Environment]
	if !ok {
		return "", fmt.Errorf("missing export_paths section for environment %q", c.Environment)
	}

	var path string
	switch runtime.GOOS {
	case "windows":
		path = paths.Windows
	case "linux":
		path = paths.Linux
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	if path == "" {
		return "", fmt.Errorf("missing export path for %s in environment %q", runtime.GOOS, c.Environment)
	}
	return path, nil
}
