package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var cardsYAML []byte

type document struct {
	Cards      []CardDef      `yaml:"cards"`
	Workplaces []WorkplaceDef `yaml:"workplaces"`
}

// Parse builds a catalog from a YAML document with top-level cards and workplaces lists.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Cards, doc.Workplaces)
}

// Default returns a fresh catalog of the bundled base and glory tables.
func Default() *Catalog {
	c, err := Parse(cardsYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled catalog is invalid: %v", err))
	}
	return c
}
