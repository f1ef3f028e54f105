package frames_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/physics"
	"github.com/san-kum/lorenzsim/internal/sim"
)

func lineTrajectory(n int, offset float64) *dynamo.Trajectory {
	t := &dynamo.Trajectory{Points: make([]dynamo.Point, n), Times: make([]float64, n)}
	for i := range t.Points {
		t.Points[i] = dynamo.Point{X: offset + float64(i), Y: -float64(i), Z: 2 * float64(i)}
		t.Times[i] = float64(i) * 0.1
	}
	t.Initial = t.Points[0]
	return t
}

var _ = Describe("Sequence", func() {
	var trajs []*dynamo.Trajectory

	BeforeEach(func() {
		trajs = []*dynamo.Trajectory{lineTrajectory(50, 0), lineTrajectory(50, 100)}
	})

	It("exposes prefixes of length min(i, N)", func() {
		seq, err := frames.New(trajs, 80)
		Expect(err).NotTo(HaveOccurred())
		Expect(seq.Len()).To(Equal(80))

		for i, f := range seq.All() {
			want := min(i, 50)
			Expect(f.Index).To(Equal(i))
			Expect(f.TimeIndex).To(Equal(want))
			for _, p := range f.Prefixes {
				Expect(p).To(HaveLen(want))
			}
		}
	})

	It("has no current point in frame zero", func() {
		seq, err := frames.New(trajs, 10)
		Expect(err).NotTo(HaveOccurred())

		f := seq.At(0)
		Expect(f.HasCurrent).To(BeFalse())
		Expect(f.Current).To(BeEmpty())
		Expect(f.Prefixes).To(HaveLen(2))
		Expect(f.Prefixes[0]).To(BeEmpty())
	})

	It("uses the last prefix point as the current point", func() {
		seq, err := frames.New(trajs, 10)
		Expect(err).NotTo(HaveOccurred())

		f := seq.At(7)
		Expect(f.HasCurrent).To(BeTrue())
		Expect(f.Current).To(Equal([]dynamo.Point{trajs[0].Points[6], trajs[1].Points[6]}))
		Expect(f.Time).To(BeNumerically("~", 0.6, 1e-12))
	})

	It("rotates the camera by 0.3 degrees per frame at 30 degrees elevation", func() {
		seq, err := frames.New(trajs, 400)
		Expect(err).NotTo(HaveOccurred())

		Expect(seq.At(0).Camera).To(Equal(frames.Camera{Azimuth: 0, Elevation: 30}))
		Expect(seq.At(100).Camera.Azimuth).To(BeNumerically("~", 30, 1e-9))
		Expect(seq.At(399).Camera.Elevation).To(Equal(30.0))
	})

	It("is restartable and deterministic", func() {
		seq, err := frames.New(trajs, 60)
		Expect(err).NotTo(HaveOccurred())

		collect := func() []frames.FrameState {
			var out []frames.FrameState
			for _, f := range seq.All() {
				out = append(out, f)
			}
			return out
		}
		first := collect()
		Expect(first).To(HaveLen(60))
		Expect(collect()).To(Equal(first))

		again, err := frames.New(trajs, 60)
		Expect(err).NotTo(HaveOccurred())
		Expect(again.At(33)).To(Equal(seq.At(33)))
	})

	It("stops early when the consumer breaks", func() {
		seq, err := frames.New(trajs, 60)
		Expect(err).NotTo(HaveOccurred())

		seen := 0
		for i := range seq.All() {
			seen++
			if i == 4 {
				break
			}
		}
		Expect(seen).To(Equal(5))
	})

	It("aliases the trajectory storage", func() {
		seq, err := frames.New(trajs, 10)
		Expect(err).NotTo(HaveOccurred())

		f := seq.At(5)
		Expect(&f.Prefixes[1][0]).To(BeIdenticalTo(&trajs[1].Points[0]))
	})

	It("yields nothing for a zero frame count", func() {
		seq, err := frames.New(trajs, 0)
		Expect(err).NotTo(HaveOccurred())

		count := 0
		for range seq.All() {
			count++
		}
		Expect(count).To(BeZero())
	})

	Context("with a stride mapping", func() {
		It("advances the prefix by k samples and clamps at N", func() {
			seq, err := frames.New(trajs, 10, frames.WithMapping(frames.Stride(10)))
			Expect(err).NotTo(HaveOccurred())

			Expect(seq.PrefixLen(1)).To(Equal(10))
			Expect(seq.PrefixLen(4)).To(Equal(40))
			Expect(seq.PrefixLen(9)).To(Equal(50))

			prev := -1
			for _, f := range seq.All() {
				Expect(f.TimeIndex).To(BeNumerically(">=", prev))
				Expect(f.TimeIndex).To(BeNumerically("<=", 50))
				prev = f.TimeIndex
			}
		})

		It("treats a non-positive stride as one", func() {
			seq, err := frames.New(trajs, 10, frames.WithMapping(frames.Stride(0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.PrefixLen(3)).To(Equal(3))
		})
	})

	It("honours camera and loop options", func() {
		seq, err := frames.New(trajs, 10, frames.WithCamera(1.5, 10), frames.WithLoop(true))
		Expect(err).NotTo(HaveOccurred())
		Expect(seq.Loop()).To(BeTrue())
		Expect(seq.At(2).Camera).To(Equal(frames.Camera{Azimuth: 3, Elevation: 10}))
	})

	DescribeTable("rejects invalid input",
		func(build func() []*dynamo.Trajectory, count int) {
			_, err := frames.New(build(), count)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		},
		Entry("negative frame count", func() []*dynamo.Trajectory { return []*dynamo.Trajectory{lineTrajectory(5, 0)} }, -1),
		Entry("no trajectories", func() []*dynamo.Trajectory { return nil }, 10),
		Entry("empty trajectory", func() []*dynamo.Trajectory { return []*dynamo.Trajectory{{}} }, 10),
		Entry("unequal lengths", func() []*dynamo.Trajectory {
			return []*dynamo.Trajectory{lineTrajectory(5, 0), lineTrajectory(6, 0)}
		}, 10),
	)
})

var _ = Describe("Sequence over integrated trajectories", func() {
	It("animates the default Lorenz run", func() {
		grid := sim.Linspace(0, 40, 4000)
		starts := sim.InitialStates(sim.NewRand(3), 3, 10)
		var trajs []*dynamo.Trajectory
		for _, x0 := range starts {
			traj, err := sim.Integrate(context.Background(), physics.NewLorenz(), x0, grid, sim.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			trajs = append(trajs, traj)
		}

		seq, err := frames.New(trajs, frames.DefaultFrameCount)
		Expect(err).NotTo(HaveOccurred())

		last := seq.At(seq.Len() - 1)
		Expect(last.TimeIndex).To(Equal(399))
		Expect(last.Current[0]).To(Equal(trajs[0].Points[398]))
		Expect(last.Time).To(BeNumerically("~", grid[398], 1e-12))
	})
})
