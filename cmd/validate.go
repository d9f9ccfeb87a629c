package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ipfwctl/iface"
	"ipfwctl/ipfw"
	"ipfwctl/rules"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rule protocol and interface name",
	Long: `Check a protocol and an interface name against the limits of the ipfw
rule format. Only TCP and UDP are accepted for protocols. Interface names must
be between 2 and abi.ifname_max characters. No kernel access is needed unless
--check-exists is given, in which case the interface must also exist on this
host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proto, _ := cmd.Flags().GetString("protocol")
		ifaceName, _ := cmd.Flags().GetString("interface")
		checkExists, _ := cmd.Flags().GetBool("check-exists")

		if !cmd.Flags().Changed("protocol") && !cmd.Flags().Changed("interface") {
			return fmt.Errorf("at least one of --protocol or --interface is required")
		}

		abi := cfg.ABI.ToABI()
		failed := 0

		if cmd.Flags().Changed("protocol") {
			if err := validateProtocol(proto); err != nil {
				errPrint(os.Stderr, "Protocol %s: %v\n", proto, err)
				failed++
			} else {
				success("Protocol %s is valid\n", proto)
			}
		}

		if cmd.Flags().Changed("interface") {
			if err := abi.ValidateInterfaceName(ifaceName); err != nil {
				errPrint(os.Stderr, "Interface %q: %v\n", ifaceName, err)
				failed++
			} else if checkExists {
				if err := iface.Exists(ifaceName); err != nil {
					errPrint(os.Stderr, "Interface %q: %v\n", ifaceName, err)
					failed++
				} else {
					success("Interface %s is valid and present\n", ifaceName)
				}
			} else {
				success("Interface %s is valid\n", ifaceName)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d validation checks failed", failed)
		}
		return nil
	},
}

func validateProtocol(proto string) error {
	n, err := rules.ParseProtocol(proto)
	if err != nil {
		return err
	}
	return ipfw.ValidateProtocol(n)
}

func init() {
	validateCmd.Flags().StringP("protocol", "p", "", "Protocol name (tcp, udp) or number")
	validateCmd.Flags().StringP("interface", "i", "", "Interface name")
	validateCmd.Flags().Bool("check-exists", false, "Also require the interface to exist on this host")
}
