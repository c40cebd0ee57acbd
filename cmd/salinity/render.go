package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/salinity"
	"github.com/phanxgames/salinity/ggsurface"
)

// renderDt is the frame time used for headless frames.
const renderDt = 1.0 / 60

func newRenderCmd(opts *options) *cobra.Command {
	var (
		out        string
		frames     int
		scriptPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the scene headless to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 {
				return fmt.Errorf("--frames must be at least 1")
			}
			cfg, sc, err := opts.load()
			if err != nil {
				return err
			}
			runner, err := loadScript(scriptPath)
			if err != nil {
				return err
			}

			s, err := ggsurface.New(cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			defer s.Close()

			r := salinity.NewRenderer(s, cfg)
			r.AddController(salinity.NewCameraControls(sc.Camera))
			r.AddController(salinity.NewSelectControls())
			r.AddController(opts.newAnimator(sc))
			if runner != nil {
				r.SetTestRunner(runner)
			}

			n := 0
			for n < frames || (runner != nil && !runner.Done()) {
				r.Render(sc.Root, sc.Camera, renderDt)
				if r.PendingScreenshots() {
					if err := r.FlushScreenshots(s.Image()); err != nil {
						return err
					}
				}
				n++
			}

			if err := s.SavePNG(out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
			st := r.Stats()
			salinity.Logger().Info("rendered", "out", out, "frames", n, "nodes", st.Nodes, "drawn", st.Drawn)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "salinity.png", "output PNG path")
	f.IntVar(&frames, "frames", 1, "frames to run before saving")
	f.StringVar(&scriptPath, "script", "", "JSON input script to play before saving")
	return cmd
}
