// Package kinematics provides the kinematic mapper algebra and kinematic bodies.
//
// A [Mapper] is a pure function from time to a planar affine transform,
// together with derived bounding queries that stay consistent with it:
//
//   - [StaticAffine]: a fixed transform, no motion
//   - [Translation]: translation along a [Trajectory]
//   - [Rotation]: rotation about a pivot driven by an [AngularMotion]
//   - [Transformed]: an original mapper followed by a transformer mapper
//   - [Mirror]: a forwarding proxy whose delegate can be swapped in place
//
// The variant set is closed; use [Visitor] for exhaustive dispatch.
//
// # Bounding queries
//
// ShapeWithBoundingPerimeter converges to the instantaneous transform of the
// shape as the interval shrinks to a point, so collision detectors can refine
// time windows and trust the result. BoundingRegion is only a cheap superset.
//
// A [Body] pairs one shape with one mapper and can be attached to a single
// collision container at a time.
package kinematics
