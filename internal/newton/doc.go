// Package newton owns the square root estimator.
//
// Ownership boundary:
// - Newton-Raphson refinement of x^2 - value
//
// - per-step diagnostic records
//
// The estimator does not validate its input. Zero and negative values run
// through the same update rule and whatever they produce (NaN, Inf, or a
// meaningless finite number) is reported and returned unchanged.
//
// Presentation is a sink concern; the estimator only emits Records.
package newton
