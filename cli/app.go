// Package cli contains the trajgen command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/trajgen/logging"
	"go.viam.com/trajgen/playback"
)

// Flags.
const (
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	generateFlagStates = "states"
	generateFlagJSON   = "json"

	profileFlagAcceleration = "acceleration"
	profileFlagHeight       = "height"
	profileFlagWidth        = "width"

	plotFlagOut      = "out"
	plotFlagVelocity = "velocity"

	replayFlagPeriod = "period"
)

// trajgenApp holds state shared by the commands of one invocation.
type trajgenApp struct {
	logger  logging.Logger
	logFile io.Closer
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	ta := &trajgenApp{logger: logging.NewBlankLogger("trajgen")}
	return &cli.App{
		Name:            "trajgen",
		Usage:           "generate time-parameterized robot trajectories from waypoint files",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.PathFlag{
				Name:  generalFlagLogFile,
				Usage: "write logs to `FILE`, rotated by size, instead of stderr",
			},
		},
		Before: func(c *cli.Context) error {
			level := zapcore.InfoLevel
			if c.Bool(generalFlagDebug) {
				level = zapcore.DebugLevel
			}
			var logOut io.Writer = c.App.ErrWriter
			if path := c.Path(generalFlagLogFile); path != "" {
				rotated := &lumberjack.Logger{
					Filename:   path,
					MaxSize:    10,
					MaxBackups: 2,
				}
				ta.logFile = rotated
				logOut = rotated
			}
			ta.logger = logging.NewWriterLogger("trajgen", logOut, level)
			return nil
		},
		After: func(c *cli.Context) error {
			if ta.logFile == nil {
				return nil
			}
			return ta.logFile.Close()
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate trajectories and print a summary of each",
				ArgsUsage: "<request file>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  generateFlagStates,
						Usage: "also print every state",
					},
					&cli.BoolFlag{
						Name:  generateFlagJSON,
						Usage: "print JSON instead of tables",
					},
				},
				Action: ta.GenerateAction,
			},
			{
				Name:      "profile",
				Usage:     "graph the velocity profile of a trajectory in the terminal",
				ArgsUsage: "<request file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  profileFlagAcceleration,
						Usage: "graph acceleration instead of velocity",
					},
					&cli.IntFlag{
						Name:  profileFlagHeight,
						Value: 12,
						Usage: "graph height in rows",
					},
					&cli.IntFlag{
						Name:  profileFlagWidth,
						Value: 72,
						Usage: "number of samples across the graph",
					},
				},
				Action: ta.ProfileAction,
			},
			{
				Name:      "plot",
				Usage:     "render a trajectory to a PNG",
				ArgsUsage: "<request file>",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     plotFlagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write the image to `FILE`",
					},
					&cli.BoolFlag{
						Name:  plotFlagVelocity,
						Usage: "plot velocity against time instead of the path",
					},
				},
				Action: ta.PlotAction,
			},
			{
				Name:      "replay",
				Usage:     "stream the states of a trajectory in real time",
				ArgsUsage: "<request file>",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  replayFlagPeriod,
						Value: playback.DefaultPeriod,
						Usage: "control period between states",
					},
				},
				Action: ta.ReplayAction,
			},
		},
	}
}
