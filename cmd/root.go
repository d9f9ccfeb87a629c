package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ipfwctl/config"
	"ipfwctl/ipfw"
	"ipfwctl/logging"
)

// Initialize colored output
var (
	info     = color.New(color.FgBlue).PrintfFunc()
	success  = color.New(color.FgGreen).PrintfFunc()
	errPrint = color.New(color.FgRed).FprintfFunc()
)

var (
	cfg *config.Config

	// newOpener is replaced in tests with a simulated kernel.
	newOpener = ipfw.SystemOpener
)

var rootCmd = &cobra.Command{
	Use:   "ipfwctl",
	Short: "ipfw control channel tool",
	Long: `Manage ipfw rules through the kernel's IP_FW socket option interface.

Rules are handled as raw kernel records: add and delete forward records
from a binary rule file, list drains the active ruleset, and audit compares
the active ruleset with a rule file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %v", err)
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("syslog") {
			loaded.Log.Syslog, _ = cmd.Flags().GetBool("syslog")
		}
		if err := logging.InitLog(loaded.Log.Level, loaded.Log.Syslog, loaded.Log.Tag); err != nil {
			return fmt.Errorf("initializing logging: %v", err)
		}
		cfg = loaded
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// openChannel builds a channel from the loaded config and opens its socket
func openChannel() (*ipfw.Channel, error) {
	chCfg, err := cfg.ChannelConfig()
	if err != nil {
		return nil, err
	}
	if err := chCfg.ABI.Validate(); err != nil {
		return nil, fmt.Errorf("abi configuration: %v", err)
	}
	chCfg.Opener = newOpener()

	ch := ipfw.NewChannel(chCfg)
	if err := ch.Open(); err != nil {
		return nil, fmt.Errorf("opening ipfw channel: %v", err)
	}
	return ch, nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().Bool("syslog", false, "Also send errors to the system log")

	// Add commands to root
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(validateCmd)
}
