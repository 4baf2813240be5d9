package collision

// Response receives the boundary events of one pair. Boundary notifications
// return whether the boundary should still be tested afterwards.
type Response interface {
	NotifyUpperBoundaryCollision(t float32) bool
	NotifyIntermediateRegionCollision(t float32)
	NotifyLowerBoundaryCollision(t float32) bool
}

// ResponseFuncs adapts plain functions to a Response. Missing boundary
// functions keep the boundary under test.
type ResponseFuncs struct {
	Upper        func(t float32) bool
	Intermediate func(t float32)
	Lower        func(t float32) bool
}

func (r *ResponseFuncs) NotifyUpperBoundaryCollision(t float32) bool {
	if r.Upper == nil {
		return true
	}
	return r.Upper(t)
}

func (r *ResponseFuncs) NotifyIntermediateRegionCollision(t float32) {
	if r.Intermediate != nil {
		r.Intermediate(t)
	}
}

func (r *ResponseFuncs) NotifyLowerBoundaryCollision(t float32) bool {
	if r.Lower == nil {
		return true
	}
	return r.Lower(t)
}
