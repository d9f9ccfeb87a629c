package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ipfwctl/rules"
)

func printAuditResult(result rules.AuditResult) {
	if result.Match {
		fmt.Println(color.GreenString("Audit passed: Enforced rules match the rule file."))
		return
	}

	fmt.Println(color.RedString("Audit failed: Differences found between the rule file and enforced rules."))
	if len(result.MissingRules) > 0 {
		fmt.Println("Missing rules (in file but not enforced):")
		for _, s := range rules.Summarize(result.MissingRules) {
			fmt.Printf("  - %s\n", color.RedString("%s version=%d head=%s", s.Digest, s.Version, s.Head))
		}
	}
	if len(result.ExtraRules) > 0 {
		fmt.Println("Extra rules (enforced but not in file):")
		for _, s := range rules.Summarize(result.ExtraRules) {
			fmt.Printf("  - %s\n", color.YellowString("%s version=%d head=%s", s.Digest, s.Version, s.Head))
		}
	}
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the active ruleset against a rule file",
	Long: `Compare the rules enforced by the kernel with the records of a binary
rule file. Rules are compared byte for byte as a multiset, so order does not
matter but duplicates do.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleFile, err := cmd.Flags().GetString("file")
		if err != nil || ruleFile == "" {
			return fmt.Errorf("--file is required")
		}

		ch, err := openChannel()
		if err != nil {
			return err
		}
		defer ch.Close()

		expected, err := rules.LoadRuleFile(ruleFile, ch.ABI().RuleSize)
		if err != nil {
			return err
		}

		rs, err := ch.FetchAll(cfg.Fetch.BatchSize)
		if err != nil {
			return fmt.Errorf("fetching ruleset: %v", err)
		}
		defer rs.Release()

		result := rules.CompareMultiSets(expected, rs.Records())
		color.New(color.Bold).Println("Audit result for ipfw ruleset:")
		printAuditResult(result)
		if !result.Match {
			return fmt.Errorf("audit failed: %d missing, %d extra", len(result.MissingRules), len(result.ExtraRules))
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().StringP("file", "f", "", "Binary rule file with the expected ruleset")
	auditCmd.MarkFlagRequired("file")
}
