package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned when setting a key decadog does not read.
var ErrUnknownKey = errors.New("unknown configuration key")

// Set writes key=value into the YAML file at path, creating the file and its
// directory when missing. Other keys in the file are preserved.
func Set(path, key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	document := map[string]any{}

	// #nosec G304 -- path is the user's own configuration file
	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &document); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if document == nil {
			document = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	setNested(document, strings.Split(key, "."), value)

	out, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, out, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func setNested(document map[string]any, parts []string, value string) {
	if len(parts) == 1 {
		document[parts[0]] = value

		return
	}

	child, ok := document[parts[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		document[parts[0]] = child
	}

	setNested(child, parts[1:], value)
}
