package trajectory

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a trajectory in a handful of numbers.
type Summary struct {
	Duration         float64 `json:"duration"`
	Length           float64 `json:"length"`
	States           int     `json:"states"`
	PeakSpeed        float64 `json:"peak_speed"`
	PeakAcceleration float64 `json:"peak_acceleration"`
	MeanSpeed        float64 `json:"mean_speed"`
	SpeedStdDev      float64 `json:"speed_std_dev"`
}

// Summarize computes a Summary. Mean and deviation of speed are weighted by the time spent around
// each state, so dense sampling in curves does not skew them.
func Summarize(traj *Trajectory) Summary {
	n := traj.Len()
	speeds := make([]float64, n)
	weights := make([]float64, n)
	summary := Summary{Duration: traj.Duration(), Length: traj.Length(), States: n}
	for i, s := range traj.states {
		speeds[i] = math.Abs(s.Velocity)
		summary.PeakSpeed = math.Max(summary.PeakSpeed, speeds[i])
		summary.PeakAcceleration = math.Max(summary.PeakAcceleration, math.Abs(s.Acceleration))
		if i > 0 {
			weights[i] += 0.5 * (s.Time - traj.states[i-1].Time)
		}
		if i < n-1 {
			weights[i] += 0.5 * (traj.states[i+1].Time - s.Time)
		}
	}
	if summary.Duration <= 0 {
		weights = nil
	}
	summary.MeanSpeed, summary.SpeedStdDev = stat.MeanStdDev(speeds, weights)
	if math.IsNaN(summary.SpeedStdDev) {
		summary.SpeedStdDev = 0
	}
	return summary
}
