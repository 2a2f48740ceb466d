package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/trajgen/generator"
	"go.viam.com/trajgen/trajectory"
	"go.viam.com/trajgen/utils"
)

// stateRecord is the JSON form of a trajectory state. Headings are in degrees.
type stateRecord struct {
	Time         float64 `json:"time"`
	Distance     float64 `json:"distance"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	HeadingDegs  float64 `json:"heading_degs"`
	Curvature    float64 `json:"curvature"`
	DCurvatureDs float64 `json:"dcurvature_ds"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

func newStateRecord(s trajectory.TimedState) stateRecord {
	return stateRecord{
		Time:         s.Time,
		Distance:     s.Distance,
		X:            s.X(),
		Y:            s.Y(),
		HeadingDegs:  utils.RadToDeg(s.Heading()),
		Curvature:    s.Curvature,
		DCurvatureDs: s.DCurvatureDs,
		Velocity:     s.Velocity,
		Acceleration: s.Acceleration,
	}
}

type trajectoryRecord struct {
	Name    string             `json:"name"`
	Summary trajectory.Summary `json:"summary"`
	States  []stateRecord      `json:"states,omitempty"`
}

// GenerateAction generates every request file given and prints what came out.
func (ta *trajgenApp) GenerateAction(c *cli.Context) error {
	reqs, err := loadRequests(c.Args().Slice())
	if err != nil {
		return err
	}
	trajs, err := generator.GenerateAll(c.Context, ta.logger,
		lo.Map(reqs, func(r namedRequest, _ int) generator.Request { return r.generate }))
	if err != nil {
		return err
	}
	for i, traj := range trajs {
		warnUnmetBoundaries(c.App.ErrWriter, reqs[i], traj)
	}

	withStates := c.Bool(generateFlagStates)
	if c.Bool(generateFlagJSON) {
		records := make([]trajectoryRecord, len(trajs))
		for i, traj := range trajs {
			records[i] = trajectoryRecord{Name: reqs[i].name, Summary: trajectory.Summarize(traj)}
			if withStates {
				records[i].States = lo.Map(traj.States(), func(s trajectory.TimedState, _ int) stateRecord {
					return newStateRecord(s)
				})
			}
		}
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(records), "writing json")
	}

	summaries := table.NewWriter()
	summaries.SetOutputMirror(c.App.Writer)
	summaries.AppendHeader(table.Row{"Name", "States", "Length (m)", "Duration (s)", "Peak speed", "Mean speed", "Peak accel"})
	for i, traj := range trajs {
		s := trajectory.Summarize(traj)
		summaries.AppendRow(table.Row{
			reqs[i].name,
			s.States,
			fmt.Sprintf("%.3f", s.Length),
			fmt.Sprintf("%.3f", s.Duration),
			fmt.Sprintf("%.3f", s.PeakSpeed),
			fmt.Sprintf("%.3f ± %.3f", s.MeanSpeed, s.SpeedStdDev),
			fmt.Sprintf("%.3f", s.PeakAcceleration),
		})
	}
	summaries.Render()

	if withStates {
		for i, traj := range trajs {
			printf(c.App.Writer, "\n%s", reqs[i].name)
			statesTable(c, traj).Render()
		}
	}
	return nil
}

func statesTable(c *cli.Context, traj *trajectory.Trajectory) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"#", "t", "s", "X", "Y", "Heading", "κ", "v", "a"})
	for i, s := range traj.States() {
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.3f", s.Time),
			fmt.Sprintf("%.3f", s.Distance),
			fmt.Sprintf("%.3f", s.X()),
			fmt.Sprintf("%.3f", s.Y()),
			fmt.Sprintf("%.1f", utils.RadToDeg(s.Heading())),
			fmt.Sprintf("%.3f", s.Curvature),
			fmt.Sprintf("%.3f", s.Velocity),
			fmt.Sprintf("%.3f", s.Acceleration),
		})
	}
	return t
}
