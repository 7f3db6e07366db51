package translator

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

// KeySetConfig adds or replaces the key set of a record type under a profile.
// Keys maps field names to the keys used in containers.
type KeySetConfig struct {
	Type    string            `yaml:"type"`
	Profile string            `yaml:"profile"`
	Keys    map[string]string `yaml:"keys"`
}

// SourceConfig describes an http endpoint that serves records of a type in a profile
type SourceConfig struct {
	Type     string            `yaml:"type"`
	Profile  string            `yaml:"profile"`
	Endpoint string            `yaml:"endpoint"`
	Path     string            `yaml:"path"`
	PageSize int               `yaml:"pageSize"`
	Headers  map[string]string `yaml:"headers"`
	Debug    bool              `yaml:"debug"`
}

type Config struct {
	KeySets []KeySetConfig `yaml:"keysets"`
	Sources []SourceConfig `yaml:"sources"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}
