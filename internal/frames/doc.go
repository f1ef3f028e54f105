// Package frames turns a set of precomputed trajectories into an
// animation: a finite, restartable sequence of [FrameState] values.
//
// A frame is a pure function of its index. Frame i shows, for every
// trajectory, the prefix of length Mapping(i) (clamped to the trajectory
// length), the last point of that prefix as the current marker, and a
// camera rotated by AzimuthPerFrame*i degrees at a fixed elevation.
//
//	seq, _ := frames.New(trajs, 400)
//	for i, f := range seq.All() {
//	    renderer.Draw(f)
//	}
package frames
