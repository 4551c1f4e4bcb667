package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from TRACKLENS_* environment variables.
type Config struct {
	DataDir        string `envconfig:"DATA_DIR" default:"./data"`
	PrimaryPattern string `envconfig:"PRIMARY_PATTERN" default:"spotify*"`
	Addr           string `default:":8080"`

	ScatterMaxRows int    `envconfig:"SCATTER_MAX_ROWS" default:"5000"`
	ScatterSeed    uint64 `envconfig:"SCATTER_SEED" default:"7"`
	TopN           int    `envconfig:"TOP_N" default:"15"`
	ArtistLimit    int    `envconfig:"ARTIST_LIMIT" default:"300"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	MirrorTable string `envconfig:"MIRROR_TABLE" default:"tracklens_tracks"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load processes the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("tracklens", &cfg)
	return cfg, err
}

func ProvideConfig() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}

var Options = ProvideConfig
