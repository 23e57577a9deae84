package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML layout of the config file:
//
//	accounts:
//	  - key: main
//	    instance: https://mastodon.social
//	tabs:
//	  - name: Go
//	    kind: hashtag
//	    args: {hashtag: golang}
type fileConfig struct {
	Accounts []Account `yaml:"accounts"`
	Tabs     []Tab     `yaml:"tabs"`
}

func loadFile(path string) (fileConfig, error) {
	var f fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return f, nil
}
