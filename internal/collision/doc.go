// Package collision holds collision test pairs and the containers that own them.
//
// A [Pair] links two distinct kinematic bodies with an optional [Response]
// and two sticky flags recording whether the upper and lower distance
// boundaries should still be tested. A [Container] owns the pairs tested
// against one collision-distance interval and yields the active ones through
// its emitter. [Detector] is the per-pair time-of-crossing query; [Advancement]
// is a conservative-advancement implementation of it.
package collision
