package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the calculation config looked up from the working directory upwards.
const ConfigFileName = "damage_table.yaml"

func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findRootFrom(cwd)
}

func findRootFrom(start string) (string, error) {
	// Support running from the repo root or from cmd/*.
	dir := start
	for i := 0; i < 10; i++ {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("cannot find app root from %q (expected to find %s in this dir or any parent)", start, ConfigFileName)
}
