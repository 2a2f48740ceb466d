package trajectory

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/trajgen/spatialmath"
)

func straightSamples(n int) []spatialmath.CurvedPose {
	samples := make([]spatialmath.CurvedPose, n)
	for i := range samples {
		samples[i] = spatialmath.NewCurvedPose(spatialmath.NewPose(float64(i), 0, 0), 0, 0)
	}
	return samples
}

// constantSpeed builds a trajectory along +X sampled every meter at 1 m/s, then accelerating over
// the last meter.
func constantSpeed(t *testing.T) *Trajectory {
	t.Helper()
	states := []TimedState{
		{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewPose(0, 0, 0), 0, 0), Velocity: 1},
		{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewPose(1, 0, 0), 0, 0), Distance: 1, Time: 1, Velocity: 1},
		{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewPose(2, 0, 0), 0, 0), Distance: 2, Time: 2, Velocity: 1, Acceleration: 1},
		{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewPose(3, 0, 0), 0.5, 0), Distance: 3, Time: 3, Velocity: 2, Acceleration: 1},
	}
	traj, err := New(states)
	test.That(t, err, test.ShouldBeNil)
	return traj
}

func TestDistanceView(t *testing.T) {
	_, err := NewDistanceView(nil)
	test.That(t, err, test.ShouldNotBeNil)

	samples := []spatialmath.CurvedPose{
		spatialmath.NewCurvedPose(spatialmath.NewPose(0, 0, 0), 0, 0),
		spatialmath.NewCurvedPose(spatialmath.NewPose(3, 4, math.Pi/2), 1, 0),
		spatialmath.NewCurvedPose(spatialmath.NewPose(3, 6, math.Pi/2), 0, 0),
	}
	view, err := NewDistanceView(samples)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, view.Len(), test.ShouldEqual, 3)
	test.That(t, view.Distance(1), test.ShouldAlmostEqual, 5)
	test.That(t, view.Length(), test.ShouldAlmostEqual, 7)

	t.Run("exact samples", func(t *testing.T) {
		for i := 0; i < view.Len(); i++ {
			test.That(t, view.Sample(view.Distance(i)), test.ShouldResemble, view.State(i))
		}
	})

	t.Run("interpolates", func(t *testing.T) {
		mid := view.Sample(2.5)
		test.That(t, mid.X(), test.ShouldAlmostEqual, 1.5)
		test.That(t, mid.Y(), test.ShouldAlmostEqual, 2)
		test.That(t, mid.Heading(), test.ShouldAlmostEqual, math.Pi/4)
		test.That(t, mid.Curvature, test.ShouldAlmostEqual, 0.5)
	})

	t.Run("clamps", func(t *testing.T) {
		test.That(t, view.Sample(-1), test.ShouldResemble, view.State(0))
		test.That(t, view.Sample(7+1e-9), test.ShouldResemble, view.State(2))
	})

	t.Run("samples are copied", func(t *testing.T) {
		samples[0] = spatialmath.NewCurvedPose(spatialmath.NewPose(9, 9, 0), 0, 0)
		test.That(t, view.State(0).X(), test.ShouldEqual, 0)
	})
}

func TestDistanceViewSingleSample(t *testing.T) {
	view, err := NewDistanceView(straightSamples(1))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, view.Length(), test.ShouldEqual, 0)
	test.That(t, view.Sample(0.5), test.ShouldResemble, view.State(0))
}

func TestNewTrajectoryValidation(t *testing.T) {
	_, err := New(nil)
	test.That(t, err, test.ShouldNotBeNil)

	start := TimedState{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewZeroPose(), 0, 0)}
	late := start
	late.Time = 1
	_, err = New([]TimedState{late})
	test.That(t, err, test.ShouldNotBeNil)

	back := start
	back.Time = 1
	back.Distance = -1
	_, err = New([]TimedState{start, back})
	test.That(t, err.Error(), test.ShouldContainSubstring, "distance decreases")

	traj, err := New([]TimedState{start})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Duration(), test.ShouldEqual, 0)
	test.That(t, traj.SampleAtTime(1), test.ShouldResemble, start)
}

func TestSampleAtTime(t *testing.T) {
	traj := constantSpeed(t)
	test.That(t, traj.Len(), test.ShouldEqual, 4)
	test.That(t, traj.Duration(), test.ShouldEqual, 3)
	test.That(t, traj.Length(), test.ShouldEqual, 3)

	test.That(t, traj.SampleAtTime(0), test.ShouldResemble, traj.First())
	test.That(t, traj.SampleAtTime(-1), test.ShouldResemble, traj.First())
	test.That(t, traj.SampleAtTime(3), test.ShouldResemble, traj.Last())
	test.That(t, traj.SampleAtTime(10), test.ShouldResemble, traj.Last())
	test.That(t, traj.SampleAtTime(2), test.ShouldResemble, traj.State(2))

	s := traj.SampleAtTime(2.5)
	test.That(t, s.Time, test.ShouldAlmostEqual, 2.5)
	test.That(t, s.X(), test.ShouldAlmostEqual, 2.5)
	test.That(t, s.Velocity, test.ShouldAlmostEqual, 1.5)
	test.That(t, s.Curvature, test.ShouldAlmostEqual, 0.25)
	test.That(t, s.Acceleration, test.ShouldEqual, 1)

	t.Run("continuous", func(t *testing.T) {
		prev := traj.SampleAtTime(0)
		for tm := 0.01; tm <= 3; tm += 0.01 {
			cur := traj.SampleAtTime(tm)
			test.That(t, math.Abs(cur.X()-prev.X()), test.ShouldBeLessThan, 0.03)
			test.That(t, math.Abs(cur.Velocity-prev.Velocity), test.ShouldBeLessThan, 0.02)
			prev = cur
		}
	})
}

func TestSampleAtDistance(t *testing.T) {
	traj := constantSpeed(t)
	test.That(t, traj.SampleAtDistance(-2), test.ShouldResemble, traj.First())
	test.That(t, traj.SampleAtDistance(4), test.ShouldResemble, traj.Last())

	s := traj.SampleAtDistance(0.25)
	test.That(t, s.Time, test.ShouldAlmostEqual, 0.25)
	test.That(t, s.Distance, test.ShouldAlmostEqual, 0.25)
}

func TestStatesAreCopied(t *testing.T) {
	traj := constantSpeed(t)
	states := traj.States()
	states[1].Velocity = 100
	test.That(t, traj.State(1).Velocity, test.ShouldEqual, 1)
}

func TestCursor(t *testing.T) {
	traj := constantSpeed(t)
	c := NewCursor(traj)
	test.That(t, c.Current(), test.ShouldResemble, traj.First())
	test.That(t, c.Done(), test.ShouldBeFalse)

	s, done := c.Advance(0.5)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, s.X(), test.ShouldAlmostEqual, 0.5)
	test.That(t, c.Time(), test.ShouldAlmostEqual, 0.5)
	test.That(t, c.Remaining(), test.ShouldAlmostEqual, 2.5)

	ahead := c.Preview(1)
	test.That(t, ahead.Time, test.ShouldAlmostEqual, 1.5)
	test.That(t, c.Time(), test.ShouldAlmostEqual, 0.5)

	_, done = c.Advance(-1)
	test.That(t, done, test.ShouldBeFalse)
	test.That(t, c.Time(), test.ShouldAlmostEqual, 0.5)

	t.Run("stops at the end", func(t *testing.T) {
		s, done := c.Advance(2.5)
		test.That(t, done, test.ShouldBeTrue)
		test.That(t, s, test.ShouldResemble, traj.Last())

		s, done = c.Advance(1)
		test.That(t, done, test.ShouldBeTrue)
		test.That(t, s, test.ShouldResemble, traj.Last())
		test.That(t, c.Time(), test.ShouldEqual, traj.Duration())
		test.That(t, c.Remaining(), test.ShouldEqual, 0)
	})

	t.Run("reset", func(t *testing.T) {
		c.Reset()
		test.That(t, c.Done(), test.ShouldBeFalse)
		test.That(t, c.Time(), test.ShouldEqual, 0)
		test.That(t, c.Current(), test.ShouldResemble, traj.First())
		test.That(t, c.Trajectory(), test.ShouldEqual, traj)
	})

	t.Run("fixed period walk", func(t *testing.T) {
		c.Reset()
		ticks := 0
		for done := false; !done; ticks++ {
			_, done = c.Advance(0.25)
		}
		test.That(t, ticks, test.ShouldEqual, 12)
	})
}

func TestMirrorAndTransform(t *testing.T) {
	traj := constantSpeed(t)

	mirrored := Mirror(traj)
	last := mirrored.Last()
	test.That(t, last.Y(), test.ShouldAlmostEqual, 0)
	test.That(t, last.Curvature, test.ShouldAlmostEqual, -0.5)
	test.That(t, last.Time, test.ShouldEqual, traj.Last().Time)

	moved := Transform(traj, spatialmath.NewPose(1, 1, math.Pi/2))
	last = moved.Last()
	test.That(t, last.X(), test.ShouldAlmostEqual, 1)
	test.That(t, last.Y(), test.ShouldAlmostEqual, 4)
	test.That(t, last.Heading(), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, last.Velocity, test.ShouldEqual, 2)

	// the source is untouched
	test.That(t, traj.Last().Y(), test.ShouldEqual, 0)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(constantSpeed(t))
	test.That(t, summary.Duration, test.ShouldEqual, 3)
	test.That(t, summary.Length, test.ShouldEqual, 3)
	test.That(t, summary.States, test.ShouldEqual, 4)
	test.That(t, summary.PeakSpeed, test.ShouldEqual, 2)
	test.That(t, summary.PeakAcceleration, test.ShouldEqual, 1)
	// weights are 0.5, 1, 1, 0.5
	test.That(t, summary.MeanSpeed, test.ShouldAlmostEqual, 7.0/6)
	test.That(t, summary.SpeedStdDev, test.ShouldBeGreaterThan, 0)

	single, err := New([]TimedState{{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewZeroPose(), 0, 0)}})
	test.That(t, err, test.ShouldBeNil)
	summary = Summarize(single)
	test.That(t, summary.MeanSpeed, test.ShouldEqual, 0)
	test.That(t, summary.SpeedStdDev, test.ShouldEqual, 0)
}

func TestTimedStateTwist(t *testing.T) {
	s := TimedState{CurvedPose: spatialmath.NewCurvedPose(spatialmath.NewZeroPose(), 0.5, 0), Velocity: -2}
	twist := s.Twist()
	test.That(t, twist.Dx, test.ShouldEqual, -2)
	test.That(t, twist.DTheta, test.ShouldEqual, -1)
}
