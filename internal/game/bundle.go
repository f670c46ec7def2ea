package game

import "math"

// Bundle is an amount per resource. It doubles as a cost record, a
// production profile and a ledger snapshot.
type Bundle [ResourceCount]float64

// BundleOf builds a Bundle from a sparse map.
func BundleOf(m map[Resource]float64) Bundle {
	var b Bundle
	for r, v := range m {
		if r.Valid() {
			b[r] = v
		}
	}
	return b
}

// Get returns the amount for r.
func (b Bundle) Get(r Resource) float64 {
	return b[r]
}

// Add returns b + o.
func (b Bundle) Add(o Bundle) Bundle {
	for i := range b {
		b[i] += o[i]
	}
	return b
}

// Scale returns b * f.
func (b Bundle) Scale(f float64) Bundle {
	for i := range b {
		b[i] *= f
	}
	return b
}

// Covers reports whether b holds at least cost of every resource.
func (b Bundle) Covers(cost Bundle) bool {
	for i := range b {
		if b[i] < cost[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether every amount is zero.
func (b Bundle) IsZero() bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Total sums all amounts.
func (b Bundle) Total() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// Positive returns b with negative entries replaced by zero.
func (b Bundle) Positive() Bundle {
	for i, v := range b {
		b[i] = math.Max(v, 0)
	}
	return b
}

// Map returns the non-zero entries keyed by resource identifier.
func (b Bundle) Map() map[string]float64 {
	out := make(map[string]float64)
	for i, v := range b {
		if v != 0 {
			out[resourceIDs[i]] = v
		}
	}
	return out
}

// BundleFromMap is the inverse of Map. Unknown identifiers are skipped and
// reported in the second return value.
func BundleFromMap(m map[string]float64) (Bundle, []string) {
	var b Bundle
	var unknown []string
	for id, v := range m {
		r, ok := ParseResource(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		b[r] = v
	}
	return b, unknown
}
