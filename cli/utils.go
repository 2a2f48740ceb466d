package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/trajgen/config"
	"go.viam.com/trajgen/generator"
	"go.viam.com/trajgen/trajectory"
)

// namedRequest is a request together with the name it was loaded under.
type namedRequest struct {
	name     string
	generate generator.Request
}

func loadRequest(path string) (namedRequest, error) {
	file, err := config.Read(path)
	if err != nil {
		return namedRequest{}, err
	}
	req, err := file.Build()
	if err != nil {
		return namedRequest{}, errors.Wrapf(err, "building %s", path)
	}
	return namedRequest{name: file.Name, generate: req}, nil
}

func loadRequests(paths []string) ([]namedRequest, error) {
	if len(paths) == 0 {
		return nil, errors.New("no request files given")
	}
	reqs := make([]namedRequest, 0, len(paths))
	for _, path := range paths {
		req, err := loadRequest(path)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// singleTrajectory loads and generates the one request file a command takes.
func (ta *trajgenApp) singleTrajectory(c *cli.Context) (namedRequest, *trajectory.Trajectory, error) {
	if c.Args().Len() != 1 {
		return namedRequest{}, nil, errors.Errorf("expected exactly one request file, got %d", c.Args().Len())
	}
	req, err := loadRequest(c.Args().First())
	if err != nil {
		return namedRequest{}, nil, err
	}
	traj, err := generator.Generate(ta.logger.Sublogger(req.name), req.generate)
	if err != nil {
		return namedRequest{}, nil, errors.Wrapf(err, "generating %s", req.name)
	}
	warnUnmetBoundaries(c.App.ErrWriter, req, traj)
	return req, traj, nil
}

// warnUnmetBoundaries flags requested start or end speeds the path was too short to honor.
func warnUnmetBoundaries(w io.Writer, req namedRequest, traj *trajectory.Trajectory) {
	const tol = 1e-6
	first, last := traj.First().Velocity, traj.Last().Velocity
	if req.generate.Reversed {
		first, last = -first, -last
	}
	if first < req.generate.StartVelocity-tol {
		warningf(w, "%s: start velocity %.3f lowered to %.3f to fit the path", req.name, req.generate.StartVelocity, first)
	}
	if last < req.generate.EndVelocity-tol {
		warningf(w, "%s: end velocity %.3f lowered to %.3f to fit the path", req.name, req.generate.EndVelocity, last)
	}
}

// warningf prints a yellow warning line.
func warningf(w io.Writer, format string, a ...interface{}) {
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprint(w, "Warning: ")
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}

// printf prints a line to the app's output.
func printf(w io.Writer, format string, a ...interface{}) {
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}
