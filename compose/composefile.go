package compose

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// composeFile is the minimal shape needed to check service definitions
type composeFile struct {
	Services map[string]any `yaml:"services"`
}

// ServiceDefined reports whether the compose file at path defines the named
// service. The deployer refuses to activate a release whose compose file
// doesn't know the managed service.
func ServiceDefined(path, service string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading compose file %s: %w", path, err)
	}

	var parsed composeFile
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return false, fmt.Errorf("parsing compose file %s: %w", path, err)
	}

	_, ok := parsed.Services[service]
	return ok, nil
}
