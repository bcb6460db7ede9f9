package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear <file.mid>...",
	Short: "Empties MIDI files",
	Long:  `Rewrites each file with the same number of tracks, all empty.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := midi.NewFile(path).Clear(); err != nil {
				return err
			}
			log.Info("cleared", "path", path)
		}
		return nil
	},
}
