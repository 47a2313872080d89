package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/triageai/triage/internal/client"
	"github.com/triageai/triage/internal/config"
	"github.com/triageai/triage/internal/tui"
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Open the interactive intake wizard",
	Long: `Open the patient intake wizard: demographics, symptom selection, and
the triage assessment, against a running assessment service.

The service address comes from --base-url, then TRIAGE_BASE_URL, then the
default local address.`,
	RunE: runIntake,
}

func init() {
	intakeCmd.Flags().StringP("base-url", "u", "", "assessment service base URL")
}

func runIntake(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}

	c := client.New(baseURL, time.Duration(cfg.HTTPTimeoutSecs)*time.Second)
	return tui.Run(c)
}
