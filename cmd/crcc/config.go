package main

import (
	"fmt"
	"time"

	"github.com/koding/multiconfig"
	"github.com/thoas/go-funk"
)

const (
	ModeRoundtrip  = "roundtrip"
	ModeCompress   = "compress"
	ModeDecompress = "decompress"

	StoreFile  = "file"
	StoreRedis = "redis"
)

type Config struct {
	Mode          string `default:"roundtrip"`
	Input         string `default:"test.txt"`
	Compressed    string `default:"compressed.tz"`
	Output        string `default:"uncompressed.txt"`
	Preset        string
	MissingLength int  `default:"2"`
	Layers        int  `default:"0"`
	Workers       int  `default:"0"`
	Ambiguity     bool `default:"false"`
	Debug         bool `default:"false"`

	Store        string        `default:"file"`
	Dir          string        `default:"."`
	RedisAddress string        `default:"localhost:6379"`
	RedisCluster bool          `default:"false"`
	RedisPrefix  string        `default:"crcc/"`
	RedisWait    time.Duration `default:"10s"`

	CacheTTL time.Duration `default:"5m"`
}

func (c Config) validate() error {
	if funk.Contains([]string{ModeRoundtrip, ModeCompress, ModeDecompress}, c.Mode) == false {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if funk.Contains([]string{StoreFile, StoreRedis}, c.Store) == false {
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.MissingLength < 0 {
		return fmt.Errorf("missing length %d is negative", c.MissingLength)
	}
	if c.Layers < 0 {
		return fmt.Errorf("layers %d is negative", c.Layers)
	}
	return nil
}

func NewConfig() (Config, error) {
	config := Config{}
	m := multiconfig.New()
	m.MustLoad(&config)

	err := config.validate()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
