package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

var errNoBytes = errors.New("confloader: map provider has no byte form")

// mapProvider feeds an in-memory map to koanf. Dotted keys such as
// "log.level" are expanded into nested sections.
type mapProvider struct {
	data  map[string]any
	delim string
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errNoBytes
}

func (p mapProvider) Read() (map[string]any, error) {
	cp := maps.Copy(p.data)
	return maps.Unflatten(cp, p.delim), nil
}
