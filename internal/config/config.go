// Package config loads emulator configuration via viper. Settings mirror the
// knobs of the emulated platform mock: listen port, the well-known default
// admin account, the job-status URL prefix override, and the custom-field
// name-to-id map used by test fixtures.
package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all emulator settings.
type Config struct {
	Port int `mapstructure:"port"`

	// The default admin user seeded into every fresh snapshot. Ticket actor
	// fields (requester/submitter/assignee) fall back to this id when absent.
	DefaultAdminID    int64  `mapstructure:"default_admin_id"`
	DefaultAdminName  string `mapstructure:"default_admin_name"`
	DefaultAdminEmail string `mapstructure:"default_admin_email"`

	// Prepended to rendered job-status URLs so clients that rewrite hosts
	// can be pointed back at the emulator.
	JobStatusURLPrefix string `mapstructure:"job_status_url_prefix"`

	// Path of the persisted state blob.
	StateFile string `mapstructure:"state_file"`

	// Per-client request throttle in requests per minute. Zero disables it.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`

	// Custom field name -> field id, for fixtures that refer to fields by name.
	CustomFields map[string]string `mapstructure:"custom_fields"`
}

// Defaults applied when no config file or env override is present.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8999)
	v.SetDefault("default_admin_id", 111)
	v.SetDefault("default_admin_name", "Default Admin")
	v.SetDefault("default_admin_email", "admin@example.com")
	v.SetDefault("job_status_url_prefix", "/mock.zendesk.com")
	v.SetDefault("state_file", "mockdesk_state.json")
	v.SetDefault("rate_limit_per_minute", 0)
}

// Load reads configuration from mockdesk.yaml (working directory), overridden
// by MOCKDESK_* environment variables. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("mockdesk")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("MOCKDESK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Keep watching so a config edit mid-session takes effect on reload.
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("config file changed: %s", e.Name)
		if err := v.Unmarshal(&cfg); err != nil {
			log.Printf("config reload failed: %v", err)
		}
	})
	v.WatchConfig()

	return &cfg, nil
}
