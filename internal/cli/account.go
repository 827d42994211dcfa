package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountShowCmd())
	cmd.AddCommand(newAccountUpdateCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	return cmd
}

// accountFlags are the editable fields shared by add and update.
type accountFlags struct {
	accountType string
	login       string
	password    string
	noPassword  bool
	labels      string
}

func (f *accountFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.accountType, "type", "", "account type (ldap or local)")
	cmd.Flags().StringVar(&f.login, "login", "", "login name")
	cmd.Flags().StringVar(&f.password, "password", "", "password (stored as plain text unless secrets.backend is keyring)")
	cmd.Flags().BoolVar(&f.noPassword, "no-password", false, "clear the password")
	cmd.Flags().StringVar(&f.labels, "labels", "", "labels separated by ';'")
	cmd.MarkFlagsMutuallyExclusive("password", "no-password")
}

// apply copies every flag the user set onto acct. Switching to LDAP without
// an explicit password drops the password, as LDAP accounts authenticate
// elsewhere.
func (f *accountFlags) apply(cmd *cobra.Command, acct *domain.Account) error {
	flags := cmd.Flags()
	if flags.Changed("type") {
		t, err := domain.ParseAccountType(f.accountType)
		if err != nil {
			return err
		}
		acct.Type = t
		if t == domain.AccountTypeLDAP && !flags.Changed("password") {
			acct.Password = nil
		}
	}
	if flags.Changed("login") {
		acct.Login = f.login
	}
	if flags.Changed("password") {
		acct.SetPassword(f.password)
	}
	if f.noPassword {
		acct.Password = nil
	}
	if flags.Changed("labels") {
		acct.LabelInput = f.labels
		acct.SyncLabelsFromInput()
	}
	return nil
}

func newAccountAddCmd() *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			accounts := env.session.Accounts()
			acct := accounts.AddAccount()
			if err := f.apply(cmd, &acct); err != nil {
				accounts.DeleteAccount(acct.ID)
				return err
			}
			accounts.UpdateAccount(acct)

			if err := env.session.Save(cmd.Context()); err != nil {
				return err
			}
			env.log.Info("account added", zap.String("id", acct.ID), zap.String("type", string(acct.Type)))

			if jsonFlag {
				return printJSON(cmd, jsonAction{OK: true, Action: "add", AccountID: acct.ID, Changed: true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account added: %s\n", acct.ID)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newAccountListCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			accounts := env.session.Accounts()
			var list []domain.Account
			if typeFlag == "" {
				list = accounts.Accounts()
			} else {
				t, err := domain.ParseAccountType(typeFlag)
				if err != nil {
					return err
				}
				if t == domain.AccountTypeLDAP {
					list = accounts.LDAPAccounts()
				} else {
					list = accounts.LocalAccounts()
				}
			}

			show := env.cfg.UI.ShowPasswords
			if jsonFlag {
				return printJSON(cmd, toJSONAccounts(list, show))
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No accounts. Run 'accountnote account add' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tLOGIN\tPASSWORD\tLABELS")
			for _, a := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					a.ID,
					a.Type,
					a.Login,
					maskPassword(a.Password, show),
					domain.LabelsString(a.Labels),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "only list accounts of this type (ldap or local)")
	return cmd
}

func newAccountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			acct, ok := env.session.Accounts().AccountByID(args[0])
			if !ok {
				return fmt.Errorf("account not found: %s", args[0])
			}

			show := env.cfg.UI.ShowPasswords
			if jsonFlag {
				return printJSON(cmd, toJSONAccount(acct, show))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", acct.ID)
			fmt.Fprintf(w, "Type:\t%s\n", acct.Type)
			fmt.Fprintf(w, "Login:\t%s\n", acct.Login)
			fmt.Fprintf(w, "Password:\t%s\n", maskPassword(acct.Password, show))
			fmt.Fprintf(w, "Labels:\t%s\n", strings.Join(labelTexts(acct.Labels), ", "))
			return w.Flush()
		},
	}
}

func newAccountUpdateCmd() *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account",
		Long:  "Update the given fields of an account. An unknown id changes nothing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			accounts := env.session.Accounts()
			acct, found := accounts.AccountByID(args[0])
			if !found {
				// Still a valid call: the store ignores unknown ids.
				acct = domain.Account{ID: args[0]}
			}
			if err := f.apply(cmd, &acct); err != nil {
				return err
			}

			changed := accounts.UpdateAccount(acct)
			if changed {
				if err := env.session.Save(cmd.Context()); err != nil {
					return err
				}
			}
			return reportChange(cmd, "update", args[0], changed)
		},
	}

	f.register(cmd)
	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			changed := env.session.Accounts().DeleteAccount(args[0])
			if changed {
				if err := env.session.Save(cmd.Context()); err != nil {
					return err
				}
			}
			return reportChange(cmd, "delete", args[0], changed)
		},
	}
}

func reportChange(cmd *cobra.Command, action, id string, changed bool) error {
	if jsonFlag {
		return printJSON(cmd, jsonAction{OK: true, Action: action, AccountID: id, Changed: changed})
	}
	out := cmd.OutOrStdout()
	if !changed {
		fmt.Fprintf(out, "No account with id %s; nothing changed.\n", id)
		return nil
	}
	switch action {
	case "delete":
		fmt.Fprintf(out, "Account deleted: %s\n", id)
	default:
		fmt.Fprintf(out, "Account updated: %s\n", id)
	}
	return nil
}

func labelTexts(labels []domain.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Text
	}
	return out
}
