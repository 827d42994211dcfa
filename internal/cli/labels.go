package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Convert between label text and label lists",
	}
	cmd.AddCommand(newLabelsParseCmd())
	cmd.AddCommand(newLabelsFormatCmd())
	return cmd
}

func newLabelsParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Split ';'-separated text into labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := domain.ParseLabels(args[0])
			if jsonFlag {
				return printJSON(cmd, toJSONLabels(labels))
			}
			for _, l := range labels {
				fmt.Fprintln(cmd.OutOrStdout(), l.Text)
			}
			return nil
		},
	}
}

func newLabelsFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format [label...]",
		Short: "Join labels into ';'-separated text",
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := make([]domain.Label, 0, len(args))
			for _, a := range args {
				labels = append(labels, domain.Label{Text: a})
			}
			text := domain.LabelsString(labels)
			if jsonFlag {
				return printJSON(cmd, map[string]string{"text": text})
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
