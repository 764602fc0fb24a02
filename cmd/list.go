package cmd

import (
	"os"

	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
	"github.com/BitPonyLLC/ledseq/pkg/sequences"
	"github.com/BitPonyLLC/ledseq/pkg/termwrap"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the LED sequences offered by the menu",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := termwrap.NewTermWrap(int(os.Stdout.Fd()), 80, 24)
		table := delay.NewTable(delay.DefaultUnit)
		cmd.Printf("delay unit = %s\n", table.Unit())

		for _, seq := range sequences.All() {
			base := seq.GetBase()
			cmd.Printf("%d. %s (%s) delay=%s\n", base.Key, base.Title(), base.Name, table.Duration(base.Slot))
			cmd.Print(tw.IndentedParagraph("    ", base.Description, 20))
		}

		cmd.Printf("pins = %v\n", leds.DefaultPins)
		return nil
	},
}
