package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/batchlab/batchctl/internal/domain"
)

// callsDocument is the on-disk shape of a calls file. A bare list of calls
// is also accepted.
type callsDocument struct {
	Calls []domain.CallInput `yaml:"calls" json:"calls"`
}

// LoadCallsFile reads an authored call list from a YAML or JSON file.
func LoadCallsFile(path string) ([]domain.CallInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calls file: %w", err)
	}

	var doc callsDocument
	var bare []domain.CallInput

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil || len(doc.Calls) == 0 {
			if err := json.Unmarshal(data, &bare); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			doc.Calls = bare
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Calls) == 0 {
			if err := yaml.Unmarshal(data, &bare); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			doc.Calls = bare
		}
	}

	if len(doc.Calls) == 0 {
		return nil, fmt.Errorf("calls file %s contains no calls", path)
	}
	return doc.Calls, nil
}
