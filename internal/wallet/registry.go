package wallet

import (
	"github.com/MKhiriev/merlin-client/models"
)

// Registry is the fixed set of connectors known to the client.
type Registry struct {
	connectors map[models.ConnectorName]Connector
	names      []models.ConnectorName
}

// NewRegistry builds a registry from connectors. A later connector with the
// same name replaces an earlier one.
func NewRegistry(connectors ...Connector) *Registry {
	r := &Registry{connectors: make(map[models.ConnectorName]Connector, len(connectors))}
	for _, c := range connectors {
		if _, ok := r.connectors[c.Name()]; !ok {
			r.names = append(r.names, c.Name())
		}
		r.connectors[c.Name()] = c
	}
	return r
}

// Get returns the connector registered under name.
func (r *Registry) Get(name models.ConnectorName) (Connector, bool) {
	c, ok := r.connectors[name]
	return c, ok
}

// Valid reports whether name, typically read from storage, names a
// registered connector.
func (r *Registry) Valid(name string) bool {
	_, ok := r.connectors[models.ConnectorName(name)]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []models.ConnectorName {
	out := make([]models.ConnectorName, len(r.names))
	copy(out, r.names)
	return out
}

// Safe returns the Safe connector when one is registered.
func (r *Registry) Safe() (*Safe, bool) {
	c, ok := r.connectors[models.ConnectorSafe]
	if !ok {
		return nil, false
	}
	s, ok := c.(*Safe)
	return s, ok
}
