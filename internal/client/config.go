package client

import (
	"os"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

const (
	configfile   = ".paperflow.yml"
	databasefile = "paperflow.db"

	// DefaultEndpoint is the public portal instance.
	DefaultEndpoint = "https://yaji.onrender.com"
)

// A Config holds client's configuration.
type Config struct {
	Endpoint string `json:"endpoint" koanf:"endpoint"`
	Database string `json:"database" koanf:"database"`
}

// LoadConfig reads the configuration from the current directory.
// A missing file is not an error, defaults apply.
func LoadConfig() (Config, error) {
	cfg := Config{
		Endpoint: DefaultEndpoint,
		Database: databasefile,
	}

	if _, err := os.Stat(configfile); os.IsNotExist(err) {
		return cfg, nil
	}

	konf := koanf.New(".")
	if err := konf.Load(file.Provider(configfile), yaml.Parser()); err != nil {
		return cfg, errors.Wrap(err, "could not load configuration")
	}

	if err := konf.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "could not parse configuration")
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Database == "" {
		cfg.Database = databasefile
	}

	return cfg, nil
}
