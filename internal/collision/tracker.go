package collision

import (
	"fmt"

	"github.com/arloliu/segfit/errs"
)

// Tracker tracks series names in a batch and the IDs derived from them.
//
// Encoded fits are identified by ID alone, so two names sharing an ID would
// be indistinguishable once encoded. The tracker rejects such batches along
// with empty and repeated names.
type Tracker struct {
	hashFn func(string) uint64
	names  map[uint64]string // ID → name
	order  []string          // names in tracking order
}

// NewTracker creates a tracker that derives IDs with hashFn.
//
// Parameters:
//   - hashFn: Name to ID function, hash.ID in production
//   - capacity: Expected number of names
func NewTracker(hashFn func(string) uint64, capacity int) *Tracker {
	return &Tracker{
		hashFn: hashFn,
		names:  make(map[uint64]string, capacity),
		order:  make([]string, 0, capacity),
	}
}

// Track records name and returns its ID.
//
// Returns:
//   - uint64: The ID of name
//   - error: errs.ErrInvalidSeriesName, errs.ErrDuplicateSeries or
//     errs.ErrSeriesIDCollision
func (t *Tracker) Track(name string) (uint64, error) {
	if name == "" {
		return 0, errs.ErrInvalidSeriesName
	}

	id := t.hashFn(name)
	if existing, ok := t.names[id]; ok {
		if existing == name {
			return 0, fmt.Errorf("%w: %q", errs.ErrDuplicateSeries, name)
		}

		return 0, fmt.Errorf("%w: %q and %q both map to 0x%016x", errs.ErrSeriesIDCollision, existing, name, id)
	}

	t.names[id] = name
	t.order = append(t.order, name)

	return id, nil
}

// Name returns the name tracked under id.
func (t *Tracker) Name(id uint64) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Names returns the tracked names in tracking order.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked names, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
}
