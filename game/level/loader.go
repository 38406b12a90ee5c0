package level

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed classic.json
var classicLevels []byte

// LoadFile reads a level catalog from a JSON file containing an array of
// level definitions. The file order becomes the catalog order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw JSON level data.
func Parse(data []byte) (*Catalog, error) {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse level data: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: level data contains no levels", ErrInvalidLevel)
	}
	return NewCatalog(defs)
}

// DefaultCatalog returns the embedded classic level set, so the server runs
// without any external level file.
func DefaultCatalog() *Catalog {
	c, err := Parse(classicLevels)
	if err != nil {
		// The embedded data is fixed at build time; failing to parse it is
		// a programming error.
		panic(fmt.Sprintf("embedded level data is invalid: %v", err))
	}
	return c
}
