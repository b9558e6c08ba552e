// Package layout places graph nodes in the plane.
//
// [Spring] runs gonum's Eades force-directed algorithm: every pair of
// nodes repels, adjacent nodes attract in proportion to their edge
// weight. Initial positions are drawn from a PCG generator seeded by
// [Options.Seed], and nodes are visited in ascending code order, so the
// same graph and options always yield the same picture.
//
// Positions are centred on the origin and scaled uniformly so the
// largest coordinate magnitude is 1.
package layout
