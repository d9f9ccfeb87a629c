package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"ipfwctl/rules"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active ipfw ruleset",
	Long: `Fetch the active ruleset from the kernel with IP_FW_GET and print one
line per rule record. With --output the raw records are also written to a
binary rule file usable by add, delete and audit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		batch, _ := cmd.Flags().GetInt("batch")
		if batch == 0 {
			batch = cfg.Fetch.BatchSize
		}

		format = strings.ToLower(format)
		if format != "text" && format != "yaml" {
			return fmt.Errorf("invalid --format %s, must be 'text' or 'yaml'", format)
		}

		ch, err := openChannel()
		if err != nil {
			return err
		}
		defer ch.Close()

		rs, err := ch.FetchAll(batch)
		if err != nil {
			return fmt.Errorf("fetching ruleset: %v", err)
		}
		defer rs.Release()

		records := rs.Records()
		summaries := rules.Summarize(records)
		switch format {
		case "yaml":
			out, err := yaml.Marshal(summaries)
			if err != nil {
				return fmt.Errorf("error marshaling to YAML: %v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
		default:
			info("Active ruleset: %d rules\n", len(records))
			for _, s := range summaries {
				fmt.Fprintf(cmd.OutOrStdout(), "  Rule %d: version=%d digest=%s head=%s\n", s.Index, s.Version, s.Digest, s.Head)
			}
		}

		if output != "" {
			if err := rules.WriteRuleFile(output, records); err != nil {
				return err
			}
			success("Wrote %d rules to %s\n", len(records), output)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("format", "text", "Output format (text or yaml)")
	listCmd.Flags().StringP("output", "o", "", "Write the raw ruleset to this file")
	listCmd.Flags().Int("batch", 0, "Records requested per kernel round trip (default fetch.batch_size)")
}
