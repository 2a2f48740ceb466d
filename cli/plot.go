package cli

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/trajgen/trajectory"
)

var (
	pathColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	waypointColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// PlotAction renders the path, or the velocity profile, of a trajectory to a PNG.
func (ta *trajgenApp) PlotAction(c *cli.Context) error {
	req, traj, err := ta.singleTrajectory(c)
	if err != nil {
		return err
	}

	var p *plot.Plot
	if c.Bool(plotFlagVelocity) {
		p, err = velocityPlot(req.name, traj)
	} else {
		p, err = pathPlot(req, traj)
	}
	if err != nil {
		return err
	}

	out := c.Path(plotFlagOut)
	if err := p.Save(6*vg.Inch, 6*vg.Inch, out); err != nil {
		return errors.Wrapf(err, "saving plot to %s", out)
	}
	ta.logger.Infof("wrote %s", out)
	return nil
}

func pathPlot(req namedRequest, traj *trajectory.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = req.name
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	path := make(plotter.XYs, traj.Len())
	for i, s := range traj.States() {
		path[i].X, path[i].Y = s.X(), s.Y()
	}
	line, err := plotter.NewLine(path)
	if err != nil {
		return nil, err
	}
	line.Color = pathColor

	waypoints := make(plotter.XYs, len(req.generate.Waypoints))
	for i, w := range req.generate.Waypoints {
		waypoints[i].X, waypoints[i].Y = w.X(), w.Y()
	}
	scatter, err := plotter.NewScatter(waypoints)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = waypointColor
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(plotter.NewGrid(), line, scatter)
	p.Legend.Add("path", line)
	p.Legend.Add("waypoints", scatter)
	return p, nil
}

func velocityPlot(name string, traj *trajectory.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = name + " velocity"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "v (m/s)"

	profile := make(plotter.XYs, traj.Len())
	for i, s := range traj.States() {
		profile[i].X, profile[i].Y = s.Time, s.Velocity
	}
	line, err := plotter.NewLine(profile)
	if err != nil {
		return nil, err
	}
	line.Color = pathColor
	p.Add(plotter.NewGrid(), line)
	return p, nil
}
