package utils

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

const configName = ".renumber"

// ConfigPath resolves the config file location. An empty cfgFile means
// $HOME/.renumber.yaml.
func ConfigPath(cfgFile string) (string, error) {
	if cfgFile == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, configName+".yaml"), nil
	}
	return homedir.Expand(cfgFile)
}
