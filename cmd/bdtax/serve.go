package main

import (
	"os"

	"github.com/rgehrsitz/bdtax/internal/api"
	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serve the calculator as a JSON API:

  POST /api/v1/calculate[?fy=]   body: taxpayer input
  POST /api/v1/compare           body: {"input": ..., "templates": [...], "transforms": [...]}
  GET  /api/v1/slabs?fy=&threshold=&category=&age=
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			level := logrus.InfoLevel
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				level = logrus.DebugLevel
			}
			logger := calculation.NewLogrusLogger("api", level, cmd.ErrOrStderr())

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				addr = ":" + port
			}
			return api.NewServer(engine, logger, version).ListenAndServe(addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :$PORT or :8080)")
	return cmd
}
