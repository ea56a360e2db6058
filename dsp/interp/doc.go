// Package interp turns a tabulated line profile into a continuous function.
//
// [New] fits one of several piecewise-cubic interpolants through every
// sample of a [profile.Table]:
//
//   - [NotAKnot]:       cubic spline with not-a-knot end conditions (default)
//   - [Natural]:        cubic spline with zero second derivative at the ends
//   - [Akima]:          Akima spline, resistant to overshoot near steps
//   - [FritschButland]: monotone piecewise cubic
//   - [CatmullRom]:     cubic Hermite with finite-difference tangents
//
// The returned [Curve] is only defined inside the sampled domain; callers
// must not evaluate it outside [Curve.Domain].
package interp
