package mockapi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/restapi/pkg/schema"
)

// LoadSeedFile reads initial records from a YAML (or JSON) file keyed by
// resource name:
//
//	dogs:
//	  - name: Rex
//	  - name: Ace
func LoadSeedFile(path string) (map[string][]schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed map[string][]schema.Record
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return seed, nil
}
