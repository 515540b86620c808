package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: map provider has no byte form, use Read")

// mapProvider loads configuration from a map whose keys may be nested maps,
// dotted paths ("restore.lifetime") or a mix of both.
type mapProvider struct {
	data  map[string]any
	delim string
}

func newMapProvider(data map[string]any, delim string) *mapProvider {
	return &mapProvider{data: data, delim: delim}
}

// ReadBytes is not supported.
func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns a nested copy of the map. The caller's map is not modified.
func (p *mapProvider) Read() (map[string]any, error) {
	cp := maps.Copy(p.data)
	return maps.Unflatten(cp, p.delim), nil
}
