package cmd

import (
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that an ipfw control socket can be opened",
	Long: `Open the ipfw control socket using the configured strategy order and
report which socket kind the kernel accepted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, err := openChannel()
		if err != nil {
			return err
		}
		defer ch.Close()

		success("ipfw control socket opened (%s)\n", ch.Strategy())
		return nil
	},
}
