package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LeJamon/xrpl-bot/internal/explain"
	"github.com/LeJamon/xrpl-bot/internal/names"
	"github.com/LeJamon/xrpl-bot/internal/xrpl/client"
)

// explainCmd fetches a transaction and prints the markdown explanation
// without touching GitHub, useful for checking what the bot would post.
var explainCmd = &cobra.Command{
	Use:   "explain <hash>",
	Short: "Print the markdown explanation for a transaction hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher, err := client.New(client.Config{
		Endpoint:  cfg.XRPL.Endpoint,
		Timeout:   cfg.XRPL.Timeout,
		CacheSize: cfg.XRPL.CacheSize,
	})
	if err != nil {
		return err
	}

	hash := strings.ToUpper(args[0])
	explainer := explain.New(names.NewRegistry(), newLogger())

	tx, err := fetcher.Tx(cmd.Context(), hash)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), explainer.ErrorComment())
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), explainer.Assemble(hash, tx))
	return nil
}
