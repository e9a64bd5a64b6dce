package domain

// OrderStatus represents a stage in the physical shipment pipeline.
type OrderStatus string

const (
	// ARRIVED_ORIGIN - parcel received at the origin branch
	StatusArrivedOrigin OrderStatus = "ARRIVED_ORIGIN"
	// DEPARTED_ORIGIN - parcel left the origin branch, in transit
	StatusDepartedOrigin OrderStatus = "DEPARTED_ORIGIN"
	// ARRIVED_DESTINATION - parcel received at the destination branch
	StatusArrivedDestination OrderStatus = "ARRIVED_DESTINATION"
	// COLLECTED - parcel picked up by the client (terminal)
	StatusCollected OrderStatus = "COLLECTED"
)

// pipeline is the canonical ordering of statuses. Every comparison in the
// workflow goes through Index, never ad-hoc string equality.
var pipeline = []OrderStatus{
	StatusArrivedOrigin,
	StatusDepartedOrigin,
	StatusArrivedDestination,
	StatusCollected,
}

// Pipeline returns the ordered status sequence.
func Pipeline() []OrderStatus {
	out := make([]OrderStatus, len(pipeline))
	copy(out, pipeline)
	return out
}

// IsValid checks if the order status is one of the four pipeline stages.
func (s OrderStatus) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in the pipeline, or -1 if s is not a
// recognized status. Callers must treat -1 as a hard error, never coerce it.
func (s OrderStatus) Index() int {
	for i, st := range pipeline {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following pipeline stage. The terminal stage maps to
// itself so advancing a collected parcel is a no-op.
func (s OrderStatus) Next() OrderStatus {
	i := s.Index()
	if i < 0 || i == len(pipeline)-1 {
		return s
	}
	return pipeline[i+1]
}

// IsRollbackTo reports whether moving from s to target walks the pipeline
// backward. Both statuses must be valid.
func (s OrderStatus) IsRollbackTo(target OrderStatus) bool {
	from, to := s.Index(), target.Index()
	return from >= 0 && to >= 0 && to < from
}

// IsForwardOrEqualTo reports whether target is at or past s in the pipeline.
func (s OrderStatus) IsForwardOrEqualTo(target OrderStatus) bool {
	from, to := s.Index(), target.Index()
	return from >= 0 && to >= 0 && to >= from
}
