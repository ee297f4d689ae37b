// Package config loads the set of sub-buffer configurations a bufferctl
// instance should create at startup, the way chroniclesd loads its own
// adapter configuration: a viper-backed YAML file mapped onto typed
// structs, validated before use.
package config

import (
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jturner314-nrl/goby3/acomms/buffer"
)

// Config is the top-level bufferctl configuration: a named set of
// sub-buffer definitions to create on startup.
type Config struct {
	Node       string               `mapstructure:"node_id"`
	SubBuffers map[string]SubBuffer `mapstructure:"sub_buffers"`
}

// SubBuffer is the on-disk representation of a acomms/buffer.Config. Zero
// values map onto buffer.NewConfig's own defaults via Build.
type SubBuffer struct {
	AckRequired  bool          `mapstructure:"ack_required"`
	BlackoutTime time.Duration `mapstructure:"blackout_time"`
	MaxQueue     int           `mapstructure:"max_queue"`
	NewestFirst  *bool         `mapstructure:"newest_first"`
	TTL          time.Duration `mapstructure:"ttl"`
	ValueBase    float64       `mapstructure:"value_base"`
}

// Build converts the on-disk record into a buffer.Config, applying
// buffer.NewConfig's defaults for any field left at its YAML zero value
// (max_queue, ttl, value_base) and for NewestFirst when left unset.
func (s SubBuffer) Build() buffer.Config {
	opts := []buffer.ConfigOption{
		buffer.WithAckRequired(s.AckRequired),
	}
	if s.BlackoutTime > 0 {
		opts = append(opts, buffer.WithBlackoutTime(s.BlackoutTime))
	}
	if s.MaxQueue != 0 {
		opts = append(opts, buffer.WithMaxQueue(s.MaxQueue))
	}
	if s.NewestFirst != nil {
		opts = append(opts, buffer.WithNewestFirst(*s.NewestFirst))
	}
	if s.TTL != 0 {
		opts = append(opts, buffer.WithTTL(s.TTL))
	}
	if s.ValueBase != 0 {
		opts = append(opts, buffer.WithValueBase(s.ValueBase))
	}
	return buffer.NewConfig(opts...)
}

// Load reads path (YAML) into a Config, applying GOBY3_-prefixed
// environment overrides the same way chroniclesd's Load does.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("goby3")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every sub-buffer record resolves to a valid
// buffer.Config before the caller attempts to Create it.
func (c Config) Validate() error {
	if c.Node == "" {
		return errors.New("node_id is required")
	}
	for name, sub := range c.SubBuffers {
		if err := sub.Build().Validate(); err != nil {
			return errors.Wrapf(err, "sub_buffers.%s", name)
		}
	}
	return nil
}
