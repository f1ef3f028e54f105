// Package physics provides the Lorenz vector field.
//
// [Lorenz] implements [dynamo.System] with the classic chaotic parameters
// sigma=10, rho=28, beta=8/3. The parameters are fixed for the lifetime
// of a run and the field is a pure function of its inputs.
package physics
