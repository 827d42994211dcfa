package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kenzo08/saa-soft-account-note/internal/app"
	"github.com/kenzo08/saa-soft-account-note/internal/config"
	"github.com/kenzo08/saa-soft-account-note/internal/logging"
	"github.com/kenzo08/saa-soft-account-note/internal/store"
	"github.com/kenzo08/saa-soft-account-note/internal/store/jsonfile"
	"github.com/kenzo08/saa-soft-account-note/internal/store/sqlite"
	"github.com/kenzo08/saa-soft-account-note/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "accountnote",
		Short:   "Terminal account notebook",
		Long:    "Keep a local list of LDAP and Local accounts with free-text labels.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			env, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := tui.Run(env.session, env.cfg.UI.ShowPasswords); err != nil {
				return err
			}
			// Save on exit as well as on every committed edit.
			return env.session.Save(context.Background())
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("accountnote %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.SilenceUsage = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.AddCommand(newAccountCmd())
	root.AddCommand(newLabelsCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// appEnv is everything a command needs once config is resolved.
type appEnv struct {
	cfg     *config.Config
	log     *zap.Logger
	session *app.Session
}

// setup loads config, builds the logger, opens the configured store and
// restores the account collection from it.
func setup(ctx context.Context) (*appEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Secrets.Backend == config.SecretsKeyring {
		st = store.WithSecrets(st, store.NewKeyringSecretStore())
	}

	session := app.NewSession(st, logger)
	if err := session.Load(ctx); err != nil {
		session.Close()
		return nil, err
	}
	logger.Debug("session ready",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("path", cfg.StoragePath()),
		zap.String("secrets", cfg.Secrets.Backend))

	return &appEnv{cfg: cfg, log: logger, session: session}, nil
}

func (e *appEnv) Close() error {
	defer e.log.Sync()
	return e.session.Close()
}

// openStore creates the data directory and opens the configured backend.
func openStore(cfg *config.Config) (store.Store, error) {
	path := cfg.StoragePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch cfg.Storage.Backend {
	case config.StorageJSON:
		return jsonfile.New(path), nil
	default:
		db, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, nil
	}
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
