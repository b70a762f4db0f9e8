package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/microclean/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set microclean configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "out_dir: %s\n", c.OutDir)
		fmt.Fprintf(out, "autoclean: %t\n", c.Autoclean)
		fmt.Fprintf(out, "delimiter: %s\n", c.Delimiter)
		fmt.Fprintf(out, "max_duplicate_indices: %d\n", c.MaxDuplicateIndices)
		fmt.Fprintf(out, "debug: %t\n", c.Debug)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "out_dir":
			cfg.OutDir = val
		case "autoclean":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for autoclean: %s", val)
			}
			cfg.Autoclean = b
		case "delimiter":
			switch val {
			case ",", ";", "tab", "\t":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("unsupported delimiter: %s", val)
			}
		case "max_duplicate_indices":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid count for max_duplicate_indices: %s", val)
			}
			cfg.MaxDuplicateIndices = n
		case "debug":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for debug: %s", val)
			}
			cfg.Debug = b
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
