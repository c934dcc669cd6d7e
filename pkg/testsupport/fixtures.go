package testsupport

import (
	"encoding/json"
	"os"
)

// LoadFixture reads a test fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// RoundTripJSON marshals v and decodes it back into generic JSON values so
// results can be compared against golden files with reflect.DeepEqual.
func RoundTripJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
