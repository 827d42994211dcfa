package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kenzo08/saa-soft-account-note/internal/store/jsonfile"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all accounts as a JSON snapshot",
		Long:  "Write all accounts as a JSON snapshot to file, or to stdout when no file is given. Passwords are included as plain text.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			accounts := env.session.Accounts().Accounts()
			data, err := jsonfile.Encode(accounts)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			env.log.Info("accounts exported", zap.String("path", args[0]), zap.Int("count", len(accounts)))

			if jsonFlag {
				return printJSON(cmd, jsonAction{OK: true, Action: "export", Count: len(accounts)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d accounts to %s\n", len(accounts), args[0])
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all accounts with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			accounts, err := jsonfile.Decode(data)
			if err != nil {
				return err
			}

			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.session.Import(cmd.Context(), accounts); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(cmd, jsonAction{OK: true, Action: "import", Changed: true, Count: len(accounts)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts\n", len(accounts))
			return nil
		},
	}
}
