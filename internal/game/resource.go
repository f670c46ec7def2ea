package game

import "fmt"

// Resource is one of the fixed set of stockpiled quantities.
type Resource uint8

const (
	Wood Resource = iota
	Stone
	Food
	Iron
	Gold
	Energy
	Science
	Mana
)

// ResourceCount is the number of resource kinds.
const ResourceCount = int(Mana) + 1

var resourceIDs = []string{
	"wood", "stone", "food", "iron", "gold", "energy", "science", "mana",
}

// Resources returns every resource in declaration order.
func Resources() []Resource {
	out := make([]Resource, ResourceCount)
	for i := range out {
		out[i] = Resource(i)
	}
	return out
}

// ParseResource maps a boundary identifier to a Resource.
func ParseResource(id string) (Resource, bool) {
	i, ok := lookup(resourceIDs, id)
	return Resource(i), ok
}

// Valid reports whether r is a declared resource.
func (r Resource) Valid() bool {
	return int(r) < ResourceCount
}

// String returns the boundary identifier.
func (r Resource) String() string {
	if !r.Valid() {
		return fmt.Sprintf("resource(%d)", uint8(r))
	}
	return resourceIDs[r]
}

// Gatherable reports whether r can be collected by hand.
func (r Resource) Gatherable() bool {
	return r == Wood || r == Stone || r == Food
}
