package cli

import (
	"github.com/spf13/cobra"

	"challengesim/sim"
	"challengesim/web"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the challenge API and websocket state stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rc)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			j, err := openJournal(cfg)
			if err != nil {
				return err
			}
			if j != nil {
				defer j.Close()
			}

			engine := sim.NewEngine(j)
			delay, err := cfg.Simulation.ParseStepDelay()
			if err != nil {
				return err
			}
			engine.SetStepDelay(delay)
			if cfg.Simulation.Seed != 0 {
				engine.Seed(cfg.Simulation.Seed)
			}

			srv := web.NewServer(cfg.Server.Addr, engine, cfg.Server.AllowedOrigins)
			defer srv.Close()
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
