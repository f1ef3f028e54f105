package frames

import (
	"iter"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

const (
	DefaultFrameCount      = 400
	DefaultAzimuthPerFrame = 0.3
	DefaultElevation       = 30.0
)

// Camera orientation in degrees.
type Camera struct {
	Azimuth   float64
	Elevation float64
}

// FrameState is everything a renderer needs for one frame. Prefixes alias
// the trajectory storage and must be treated as read-only.
type FrameState struct {
	Index int
	// TimeIndex is the prefix length shared by all trajectories.
	TimeIndex int
	// Time is the grid time of the current point, zero when there is none.
	Time       float64
	Prefixes   [][]dynamo.Point
	Current    []dynamo.Point
	HasCurrent bool
	Camera     Camera
}

// Mapping converts a frame index into a prefix length before clamping.
type Mapping func(frame int) int

// Identity shows frame i with a prefix of length i.
func Identity() Mapping { return func(i int) int { return i } }

// Stride advances the prefix by k samples per frame.
func Stride(k int) Mapping {
	if k < 1 {
		k = 1
	}
	return func(i int) int { return i * k }
}

type Option func(*Sequence)

func WithMapping(m Mapping) Option { return func(s *Sequence) { s.mapping = m } }

func WithCamera(azimuthPerFrame, elevation float64) Option {
	return func(s *Sequence) {
		s.azimuthPerFrame = azimuthPerFrame
		s.elevation = elevation
	}
}

// WithLoop marks the sequence for restart after the last frame. The
// sequence itself stays finite; players honour the flag.
func WithLoop(loop bool) Option { return func(s *Sequence) { s.loop = loop } }

// Sequence is the frame sequencer. It holds references to the
// trajectories and never mutates them.
type Sequence struct {
	trajs           []*dynamo.Trajectory
	n               int
	frameCount      int
	mapping         Mapping
	azimuthPerFrame float64
	elevation       float64
	loop            bool
}

// New validates the trajectories and returns a sequence of frameCount
// frames. frameCount == 0 yields an empty sequence.
func New(trajs []*dynamo.Trajectory, frameCount int, opts ...Option) (*Sequence, error) {
	if frameCount < 0 {
		return nil, dynamo.NewConfigError("frame_count", "must not be negative, got %d", frameCount)
	}
	if len(trajs) == 0 {
		return nil, dynamo.NewConfigError("trajectories", "no trajectories to animate")
	}
	n := trajs[0].Len()
	if n == 0 {
		return nil, dynamo.NewConfigError("trajectories", "trajectory 0 is empty")
	}
	for i, t := range trajs {
		if t.Len() != n {
			return nil, dynamo.NewConfigError("trajectories", "trajectory %d has %d points, expected %d", i, t.Len(), n)
		}
	}

	s := &Sequence{
		trajs:           trajs,
		n:               n,
		frameCount:      frameCount,
		mapping:         Identity(),
		azimuthPerFrame: DefaultAzimuthPerFrame,
		elevation:       DefaultElevation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sequence) Len() int          { return s.frameCount }
func (s *Sequence) Loop() bool        { return s.loop }
func (s *Sequence) Samples() int      { return s.n }
func (s *Sequence) Trajectories() int { return len(s.trajs) }

// PrefixLen is the number of samples visible in frame i.
func (s *Sequence) PrefixLen(i int) int {
	k := s.mapping(i)
	if k < 0 {
		return 0
	}
	if k > s.n {
		return s.n
	}
	return k
}

// CameraAt returns the camera for frame i.
func (s *Sequence) CameraAt(i int) Camera {
	return Camera{Azimuth: s.azimuthPerFrame * float64(i), Elevation: s.elevation}
}

// At computes frame i. Indices outside [0, Len) are not rejected; they
// clamp the prefix like any other index.
func (s *Sequence) At(i int) FrameState {
	k := s.PrefixLen(i)
	f := FrameState{
		Index:     i,
		TimeIndex: k,
		Prefixes:  make([][]dynamo.Point, len(s.trajs)),
		Camera:    s.CameraAt(i),
	}
	for j, t := range s.trajs {
		f.Prefixes[j] = t.Prefix(k)
	}
	if k > 0 {
		f.HasCurrent = true
		f.Current = make([]dynamo.Point, len(s.trajs))
		for j, p := range f.Prefixes {
			f.Current[j] = p[k-1]
		}
		if times := s.trajs[0].Times; len(times) >= k {
			f.Time = times[k-1]
		}
	}
	return f
}

// All yields frames 0..Len-1 in order. Every call starts over.
func (s *Sequence) All() iter.Seq2[int, FrameState] {
	return func(yield func(int, FrameState) bool) {
		for i := 0; i < s.frameCount; i++ {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}
