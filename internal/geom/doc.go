// Package geom provides the planar shape algebra used by the collision core:
// closed time/distance intervals, homogeneous affine transforms, convex
// shapes with Minkowski dilation, and the signed perimetral distance between
// two shapes.
//
// All scalars are float32. Affine transforms are [mgl32.Mat3] values acting
// on homogeneous points (x, y, 1).
package geom
