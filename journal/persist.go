package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

// ErrChecksumMismatch is returned when a journal file fails integrity
// verification on load.
var ErrChecksumMismatch = errors.New("journal checksum mismatch")

// envelope is the on-disk form: the journal body plus a checksum over
// its marshaled YAML.
type envelope struct {
	Checksum string  `yaml:"checksum"`
	Journal  Journal `yaml:"journal"`
}

func checksum(body []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(body))
}

// Save writes the journal to the given path as YAML, wrapped in an
// envelope carrying an xxh3 checksum of the journal body.
func Save(j Journal, path string) error {
	body, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	data, err := yaml.Marshal(envelope{
		Checksum: checksum(body),
		Journal:  j,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal journal envelope: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write journal file %q: %w", path, err)
	}

	return nil
}

// SaveTo writes the journal into dir under its canonical file name,
// creating the directory if needed. It returns the written path.
func SaveTo(j Journal, dir string) (string, error) {
	err := os.MkdirAll(dir, 0o750)
	if err != nil {
		return "", fmt.Errorf("failed to create journal directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(j))

	err = Save(j, path)
	if err != nil {
		return "", err
	}

	return path, nil
}

// Load reads a journal file and verifies its checksum. A journal whose
// body does not match the recorded checksum returns ErrChecksumMismatch.
func Load(path string) (Journal, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return Journal{}, fmt.Errorf("failed to read journal file %q: %w", path, err)
	}

	var env envelope

	err = yaml.Unmarshal(data, &env)
	if err != nil {
		return Journal{}, fmt.Errorf("failed to parse journal file %q: %w", path, err)
	}

	body, err := yaml.Marshal(env.Journal)
	if err != nil {
		return Journal{}, fmt.Errorf("failed to marshal journal body: %w", err)
	}

	if got := checksum(body); got != env.Checksum {
		return Journal{}, fmt.Errorf("%w: file %q has %s, body hashes to %s",
			ErrChecksumMismatch, path, env.Checksum, got)
	}

	return env.Journal, nil
}
