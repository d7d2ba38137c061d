// Command rigreplay runs scripted input through the camera rig without a window and
// prints the resulting poses tick by tick.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "rigreplay",
		Short:        "Replay scripted input through the FPS and orbit camera controllers",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search ./oxyrig.yaml and ~/.config/oxyrig)")

	loadConfig := func() (config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(newRunCmd(loadConfig), newDefaultsCmd(), newValidateCmd(loadConfig))
	return root
}

func newRunCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var (
		opts    replayOptions
		workers int
	)

	cmd := &cobra.Command{
		Use:   "run <script.yaml>...",
		Short: "Replay scripts and print one line per tick",
		Long: `Replay one or more input scripts. Each script drives its own camera and engine;
several scripts are replayed in parallel and printed in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return replayAll(cmd.OutOrStdout(), cfg, args, opts, workers, logging.Component(logger, "replay"))
		},
	}
	cmd.Flags().Float32Var(&opts.dt, "dt", 0, "tick duration in seconds (default: script dt, else 1/tick_rate)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON lines instead of text")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "scripts replayed at once")
	return cmd
}

func newDefaultsCmd() *cobra.Command {
	var presetOnly bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if presetOnly {
				data, err = controller.MarshalPreset(controller.DefaultPreset())
			} else {
				data, err = yaml.Marshal(config.DefaultConfig())
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&presetOnly, "preset", false, "print only the controller preset")
	return cmd
}

func newValidateCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the config and report whether it is usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: tick_rate=%g lag_weight=%g orbit_radius=[%g, %g]\n",
				cfg.Engine.TickRate, cfg.Smoothing.LagWeight, cfg.Orbit.MinRadius, cfg.Orbit.MaxRadius)
			return nil
		},
	}
}
