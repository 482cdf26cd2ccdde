package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/chatsync/internal/config"
)

// BuildInfo версия сборки, задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Opener собирает Cli по загруженной конфигурации. Closer вызывается
// после выполнения команды.
type Opener func(ctx context.Context, cfg *config.ClientConfig) (*Cli, io.Closer, error)

type root struct {
	v       *viper.Viper
	open    Opener
	cfgFile string
}

// NewRootCommand собирает дерево команд chatsync
func NewRootCommand(v *viper.Viper, open Opener, build BuildInfo) *cobra.Command {
	r := &root{v: v, open: open}

	cmd := &cobra.Command{
		Use:           "chatsync",
		Short:         "Keep chats and presets in sync across devices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&r.cfgFile, "config", "c", "", "config file (default ./chatsync.yaml)")
	flags.String("backend", "", "remote store: server, drive, s3, dynamodb")
	flags.String("server", "", "document server URL")
	flags.String("db", "", "path to local database")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	for key, flag := range map[string]string{
		"backend":   "backend",
		"server":    "server",
		"db_path":   "db",
		"log.level": "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(
		r.registerCmd(),
		r.loginCmd(),
		r.logoutCmd(),
		r.statusCmd(),
		r.enableCmd(),
		r.disableCmd(),
		r.syncCmd(),
		r.restoreCmd(),
		r.wipeRemoteCmd(),
		r.chatCmd(),
		r.presetCmd(),
		newConfigCmd(v),
		newVersionCmd(build),
	)
	return cmd
}

// run загружает конфигурацию, открывает зависимости и выполняет fn
func (r *root) run(fn func(ctx context.Context, c *Cli, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.LoadClient(r.v, r.cfgFile)
		if err != nil {
			return err
		}

		c, closer, err := r.open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closer.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		return fn(cmd.Context(), c, args)
	}
}

func (r *root) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account on the document server",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runRegister(ctx)
		}),
	}
}

func (r *root) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "login [server|session|drive]",
		Short:     "Sign in to the remote store",
		Long:      "Sign in to the configured remote store. Without an argument the method is chosen by backend.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{LoginServer, LoginSession, LoginDrive, LoginStatic},
		RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
			method := ""
			if len(args) == 1 {
				method = args[0]
			}
			return c.runLogin(ctx, method)
		}),
	}
}

func (r *root) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and disable synchronization",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runLogout(ctx)
		}),
	}
}

func (r *root) statusCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sync and session status",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runStatus(ctx, check)
		}),
	}
	cmd.Flags().BoolVar(&check, "check", false, "validate the session with the remote store")
	return cmd
}

func (r *root) enableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Turn on synchronization",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runEnable(ctx)
		}),
	}
}

func (r *root) disableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Turn off synchronization",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runDisable(ctx)
		}),
	}
}

func (r *root) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a full synchronization round",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runSync(ctx)
		}),
	}
}

func (r *root) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Pull chats and presets from the remote store",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runRestore(ctx)
		}),
	}
}

func (r *root) wipeRemoteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "wipe-remote",
		Short: "Delete all synchronized documents from the remote store",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runWipeRemote(ctx, yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (r *root) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Manage local chats",
	}

	var add chatAddOptions
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a chat",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runChatAdd(ctx, add)
		}),
	}
	addCmd.Flags().StringVarP(&add.Name, "name", "n", "", "chat name")
	addCmd.Flags().StringVar(&add.Title, "title", "", "chat title (default: name)")
	addCmd.Flags().StringVar(&add.Source, "source", "", "chatgpt, claude, gemini or deepseek")
	addCmd.Flags().StringVar(&add.Preset, "preset", "", "preset name")
	addCmd.Flags().StringVarP(&add.File, "file", "f", "", "import chat from JSON file")
	addCmd.Flags().StringArrayVarP(&add.Messages, "message", "m", nil, "message as role:content, repeatable")

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show chat details",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
			return c.runChatShow(ctx, args[0], showJSON)
		}),
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print chat as JSON")

	var dupName string
	dupCmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a chat under a new name",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
			return c.runChatDuplicate(ctx, args[0], dupName)
		}),
	}
	dupCmd.Flags().StringVarP(&dupName, "name", "n", "", "name of the copy (default: \"<name> (copy)\")")

	cmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List chats",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runChatList(ctx)
			}),
		},
		showCmd,
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename a chat",
			Args:  cobra.ExactArgs(2),
			RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runChatRename(ctx, args[0], args[1])
			}),
		},
		dupCmd,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a chat on all devices",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runChatDelete(ctx, args[0])
			}),
		},
	)
	return cmd
}

func (r *root) presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage local presets",
	}

	var add presetAddOptions
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a preset",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runPresetAdd(ctx, add)
		}),
	}
	addCmd.Flags().StringVarP(&add.Name, "name", "n", "", "preset name")
	addCmd.Flags().StringVarP(&add.Settings, "settings", "s", "", "settings as JSON")
	addCmd.Flags().StringVarP(&add.File, "file", "f", "", "read settings from JSON file")

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show preset details",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
			return c.runPresetShow(ctx, args[0], showJSON)
		}),
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print preset as JSON")

	var dupName string
	dupCmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a preset under a new name",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
			return c.runPresetDuplicate(ctx, args[0], dupName)
		}),
	}
	dupCmd.Flags().StringVarP(&dupName, "name", "n", "", "name of the copy (default: \"<name> (copy)\")")

	cmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List presets",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runPresetList(ctx)
			}),
		},
		showCmd,
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename a preset",
			Args:  cobra.ExactArgs(2),
			RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runPresetRename(ctx, args[0], args[1])
			}),
		},
		dupCmd,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a preset on all devices",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
				return c.runPresetDelete(ctx, args[0])
			}),
		},
	)
	return cmd
}

func newVersionCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chatsync client\n")
			fmt.Fprintf(out, "Version:    %s\n", build.Version)
			fmt.Fprintf(out, "Build Date: %s\n", build.BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", build.GitCommit)
		},
	}
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefaults(v, path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
