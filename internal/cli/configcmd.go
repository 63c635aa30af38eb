package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stickypack/pkg/settings"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage the saved pack configuration",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configSaveCommand())
	cmd.AddCommand(c.configResetCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configSchemaCommand())
	cmd.AddCommand(c.configExportCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved configuration merged over the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.open(cmd.Context(), boardMemory)
			if err != nil {
				return err
			}
			defer rt.Close()

			cfg, err := rt.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render("Pack configuration"))
			printConfig(out, cfg)
			return nil
		},
	}
}

func (c *CLI) configSaveCommand() *cobra.Command {
	var flags packFlags
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a configuration built from flags or a preset",
		Example: `  stickypack config save --packs 4 --colors yellow,cyan
  stickypack config save --preset retro.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := c.open(ctx, boardMemory)
			if err != nil {
				return err
			}
			defer rt.Close()

			base, err := rt.settings.Get(ctx)
			if err != nil {
				return err
			}
			cfg, err := flags.config(cmd, base)
			if err != nil {
				return err
			}
			if err := settings.ValidateConfig(cfg); err != nil {
				return err
			}
			if err := rt.settings.Save(ctx, cfg); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Configuration saved")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) configResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.open(cmd.Context(), boardMemory)
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := rt.settings.Reset(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Configuration reset to defaults")
			return nil
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the app config and saved settings live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			appPath := c.configPath
			if appPath == "" {
				p, err := DefaultAppConfigPath()
				if err != nil {
					return err
				}
				appPath = p
			}
			printKeyValue(out, "app config", appPath)

			s := c.app.Settings
			switch s.Backend {
			case storeFile:
				path := s.Path
				if path == "" {
					p, err := settings.DefaultPath()
					if err != nil {
						return err
					}
					path = p
				}
				printKeyValue(out, "settings", path)
			case storeRedis:
				printKeyValue(out, "settings", fmt.Sprintf("redis %s (board %s)", s.RedisURL, c.settingsScope()))
			case storeMongo:
				printKeyValue(out, "settings", fmt.Sprintf("mongo %s/%s.%s (board %s)", s.MongoURI, s.MongoDB, settings.MongoCollection, c.settingsScope()))
			default:
				printKeyValue(out, "settings", "memory (not persisted)")
			}
			return nil
		},
	}
}

func (c *CLI) configSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a saved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), settings.Schema())
			return err
		},
	}
}

func (c *CLI) configExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.toml>",
		Short: "Write the saved configuration as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.open(cmd.Context(), boardMemory)
			if err != nil {
				return err
			}
			defer rt.Close()

			cfg, err := rt.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := settings.WritePreset(args[0], cfg); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Preset written")
			printFile(out, args[0])
			printNextStep(out, "Use it", "stickypack create --preset "+args[0])
			return nil
		},
	}
}
