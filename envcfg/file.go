package envcfg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFileType is returned when the file extension is not recognized.
var ErrUnknownFileType = errors.New("env file doesn't have a known file suffix")

// LoadEnvFile loads environment variables from a file and returns them as a
// map. The format is detected from the file extension:
//   - .env files are parsed as KEY=VALUE pairs (one per line)
//   - .yml/.yaml files are expected to have an "env" field containing
//     string key-value pairs
func LoadEnvFile(path string) (map[string]string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(fileInfo.Name())

	switch {
	case strings.HasSuffix(name, ".env"):
		return godotenv.Read(path)
	case strings.HasSuffix(name, ".yml"), strings.HasSuffix(name, ".yaml"):
		return loadYAMLFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, fileInfo.Name())
	}
}

// yamlEnvFile is the expected shape of a YAML environment file.
//
// Example:
//
//	env:
//	  JOURNAL_DIR: /var/lib/statepilot
//	  LOG_LEVEL: "debug"
type yamlEnvFile struct {
	Env map[string]string `yaml:"env"`
}

func loadYAMLFile(path string) (map[string]string, error) {
	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return nil, err
	}

	env := &yamlEnvFile{}

	err = yaml.Unmarshal(bts, &env)
	if err != nil {
		return nil, err
	}

	return env.Env, nil
}
