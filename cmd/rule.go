package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ipfwctl/ipfw"
	"ipfwctl/rules"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add rules from a binary rule file",
	Long: `Forward every record of a binary rule file to the kernel with IP_FW_ADD.
The file holds struct ip_fw records back to back, each abi.rule_size bytes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyRuleFile(cmd.Flags(), "add", (*ipfw.Channel).AddRule)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete rules listed in a binary rule file",
	Long:  `Forward every record of a binary rule file to the kernel with IP_FW_DEL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyRuleFile(cmd.Flags(), "delete", (*ipfw.Channel).DeleteRule)
	},
}

func applyRuleFile(flags *pflag.FlagSet, verb string, apply func(*ipfw.Channel, []byte) error) error {
	ruleFile, _ := flags.GetString("file")
	if ruleFile == "" {
		return fmt.Errorf("--file is required")
	}

	ch, err := openChannel()
	if err != nil {
		return err
	}
	defer ch.Close()

	abi := ch.ABI()
	records, err := rules.LoadRuleFile(ruleFile, abi.RuleSize)
	if err != nil {
		return err
	}
	for _, i := range rules.VersionMismatches(records, abi.APIVersion) {
		errPrint(os.Stderr, "Warning: rule %d does not carry API version %d\n", i, abi.APIVersion)
	}

	info("Applying %d rules (%s) from %s...\n", len(records), verb, ruleFile)
	failed := 0
	for i, rec := range records {
		if err := apply(ch, rec); err != nil {
			errPrint(os.Stderr, "Error on rule %d (%s): %v\n", i, rules.Digest(rec), err)
			failed++
			continue
		}
		success("  ✓ rule %d (%s) %s\n", i, rules.Digest(rec), pastTense(verb))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d rules could not be %s", failed, len(records), pastTense(verb))
	}
	return nil
}

func pastTense(verb string) string {
	if verb == "add" {
		return "added"
	}
	return verb + "d"
}

func init() {
	addCmd.Flags().StringP("file", "f", "", "Binary rule file")
	deleteCmd.Flags().StringP("file", "f", "", "Binary rule file")
	addCmd.MarkFlagRequired("file")
	deleteCmd.MarkFlagRequired("file")
}
