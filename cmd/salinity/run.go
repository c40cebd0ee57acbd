package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/salinity"
	"github.com/phanxgames/salinity/ebitenhost"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		showFPS    bool
		scriptPath string
		exitAfter  bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scene in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sc, err := opts.load()
			if err != nil {
				return err
			}
			runner, err := loadScript(scriptPath)
			if err != nil {
				return err
			}

			g, err := ebitenhost.NewGame(sc.Root, sc.Camera, cfg)
			if err != nil {
				return err
			}
			g.Renderer.AddController(salinity.NewCameraControls(g.Camera))
			g.Renderer.AddController(salinity.NewSelectControls())
			g.Renderer.AddController(opts.newAnimator(sc))
			if runner != nil {
				g.Renderer.SetTestRunner(runner)
			}

			var watcher *salinity.ConfigWatcher
			if watch {
				if _, err := os.Stat(opts.configPath); err == nil {
					watcher, err = salinity.WatchConfig(opts.configPath, 0)
					if err != nil {
						return err
					}
					defer watcher.Close()
				}
			}

			g.OnUpdate = func() error {
				if watcher != nil {
					if next, ok := watcher.Poll(); ok {
						g.Renderer.SetConfig(next)
					}
				}
				if exitAfter && runner != nil && runner.Done() && !g.Renderer.PendingScreenshots() {
					return ebiten.Termination
				}
				return nil
			}

			err = ebitenhost.Run(g, ebitenhost.RunConfig{
				Title:   "salinity",
				Width:   cfg.Width,
				Height:  cfg.Height,
				ShowFPS: showFPS,
			})
			if errors.Is(err, ebiten.Termination) {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&showFPS, "fps", false, "show the FPS overlay")
	f.StringVar(&scriptPath, "script", "", "JSON input script to play back")
	f.BoolVar(&exitAfter, "exit-after-script", false, "close the window when the script finishes")
	f.BoolVar(&watch, "watch", true, "reload the config file when it changes")
	return cmd
}
