// Package registry selects a tensornet backend by name.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/tensor"
)

// Factory constructs a backend. Construction may fail, e.g. when the
// backend's numerical library is unavailable.
type Factory func(log logger.Logger) (tensor.Backend, error)

var factories = map[string]Factory{
	gonum.Name: func(log logger.Logger) (tensor.Backend, error) {
		b, err := gonum.New(gonum.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return b, nil
	},
}

// Names lists the registered backends in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the backend registered under name.
func New(name string, log logger.Logger) (tensor.Backend, error) {
	if log == nil {
		log = logger.Nop()
	}
	factory, ok := factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", tensor.ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return factory(log)
}
