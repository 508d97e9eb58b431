package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// EnvVars lists the secrets that are read from the environment
// and never stored in the yaml file
var EnvVars = []string{
	"TOPSORT_API_KEY",
}

type topsortConfig struct {
	Marketplace string `yaml:"marketplace"`
	BaseURL     string `yaml:"baseUrl"`
	apiKey      string
}

// File contains the parsed configuration with secrets attached from the environment
type File struct {
	Topsort topsortConfig `yaml:"topsort"`
}

// New reads the yaml file at path and attaches the secrets from the environment
func New(path string) (*File, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Read config file - %v", err)
	}

	f := new(File)
	if err := yaml.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("Parse config file - %v", err)
	}

	if f.Topsort.Marketplace == "" {
		return nil, fmt.Errorf("Config needs a marketplace id")
	}

	f.Topsort.apiKey = os.Getenv(EnvVars[0])

	return f, nil
}

// GetTopsort returns the marketplace id, API key and base URL override;
// an empty base URL selects the production endpoint
func (f *File) GetTopsort() (marketplace, apiKey, baseURL string, err error) {
	if f.Topsort.apiKey == "" {
		return "", "", "", fmt.Errorf("%s is not set", EnvVars[0])
	}

	return f.Topsort.Marketplace, f.Topsort.apiKey, f.Topsort.BaseURL, nil
}

// SetHost overrides the configured base URL, e.g. to point at a local stub during development
func (f *File) SetHost(host string) {
	f.Topsort.BaseURL = host
}
