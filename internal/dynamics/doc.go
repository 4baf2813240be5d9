// Package dynamics is the component layer above kinematic bodies.
//
// Bodies carry transmitter, receiver and symmetric components. A [Container]
// keeps per-kind profiles of which bodies carry which components and, as
// components come and go, counts the matches between every pair of bodies.
// A pair with at least one match gets a [PairResponse] installed in the
// underlying collision container; the response fans crossings out to the
// handlers of every matching component. Pairs without matches are never
// created, so the profiles act as the broad phase.
package dynamics
