package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/prepaid/internal/journal"
	"github.com/cleared-dev/prepaid/internal/logging"
)

func newEntriesCommand(root *rootOptions) *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Print journal entries as CSV",
		Long: "Print the journal entries for the configured period as CSV. " +
			"Item and month filters from the config, environment or flags are applied.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadSettings(cmd, root, &o)
			if err != nil {
				return err
			}

			_, entries, err := generate(cmd.Context(), s, root.logger)
			if err != nil {
				return err
			}

			matched := journal.Filter(entries, s.Filter)
			if len(matched) == 0 {
				root.logger.WithField(logging.FieldEntries, 0).Info("no matching journal entries")
			}
			return journal.WriteEntries(cmd.OutOrStdout(), matched)
		},
	}

	addOverrideFlags(cmd, &o)

	return cmd
}
