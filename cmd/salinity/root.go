package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/salinity"
)

// options are the flags shared by every command.
type options struct {
	configPath string
	scenePath  string
	verbose    bool
}

func execute() error {
	var opts options

	root := &cobra.Command{
		Use:          "salinity",
		Short:        "Interactive 2D scene graph viewer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			salinity.SetLogger(newLogger(os.Stderr, level))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "salinity.toml", "config file (TOML)")
	pf.StringVarP(&opts.scenePath, "scene", "s", "", "scene file (TOML); a demo scene when empty")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd(&opts))
	root.AddCommand(newRenderCmd(&opts))

	return root.ExecuteContext(context.Background())
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "salinity",
	})
}

// load reads the config and scene named by opts.
func (o *options) load() (salinity.Config, *salinity.Scene, error) {
	cfg, err := salinity.LoadConfig(o.configPath)
	if err != nil {
		return salinity.Config{}, nil, err
	}
	if o.scenePath == "" {
		salinity.Logger().Debug("no scene given, using demo scene")
		return cfg, demoScene(), nil
	}
	sc, err := salinity.LoadSceneFile(o.scenePath)
	if err != nil {
		return salinity.Config{}, nil, err
	}
	salinity.Logger().Debug("scene loaded", "path", o.scenePath, "nodes", len(sc.Root.Children()))
	return cfg, sc, nil
}

// newAnimator returns the command's Animator, seeded with the
// demo intro when no scene file was given.
func (o *options) newAnimator(sc *salinity.Scene) *salinity.Animator {
	a := &salinity.Animator{}
	if o.scenePath == "" {
		for _, g := range demoIntro(sc) {
			a.Add(g)
		}
	}
	return a
}

// loadScript reads an input script, or returns nil for an empty path.
func loadScript(path string) (*salinity.TestRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return salinity.LoadTestScript(data)
}
