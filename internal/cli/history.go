package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LeJamon/xrpl-bot/internal/storage/auditdb"
)

var historyLimit int

// historyCmd lists the most recently posted explanations from the audit log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently posted explanations",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.AuditPath == "" {
		return errors.New("storage.audit_path is not configured")
	}

	audit, err := auditdb.Open(cfg.Storage.AuditPath)
	if err != nil {
		return err
	}
	defer audit.Close()

	records, err := audit.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rec := range records {
		fmt.Fprintf(out, "%s  %-13s %s#%d %s\n",
			rec.PostedAt.Format(time.RFC3339), rec.TxType, rec.Repo, rec.Issue, rec.TxHash)
	}
	return nil
}
