package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/triageai/triage/internal/api"
	"github.com/triageai/triage/internal/config"
	"github.com/triageai/triage/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment HTTP service",
	Long: `Start the HTTP service the intake wizard talks to.

Endpoints:
  GET  /health                  — Health check
  GET  /metrics                 — Process runtime metrics
  GET  /triage/symptoms         — Symptom catalog
  POST /triage/validate-cause   — Validate a mechanism-of-injury description
  POST /triage/assess           — Score symptoms into an assessment
  GET  /triage/assessments      — List stored assessments
  POST /triage/contacts         — Store an emergency contact
  GET  /triage/contacts         — List stored emergency contacts
  GET  /triage/ws               — WebSocket feed of completed assessments

Assessments and contacts persist to Postgres when DATABASE_URL is set and to
process memory otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "address to listen on")
	serveCmd.Flags().StringP("port", "p", "", "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	logger := newLogger(cfg)

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		st = pg
		logger.Info().Msg("using postgres store")
	} else {
		st = store.NewMemory()
		logger.Info().Msg("no DATABASE_URL set, using in-memory store")
	}
	defer st.Close()

	srv := api.New(cfg.ListenAddr(), st, logger)
	return srv.ListenAndServe()
}
