package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(appendCmd)
}

var appendCmd = &cobra.Command{
	Use:   "append <file.mid> <score or file.mid>",
	Short: "Appends a sequence to a MIDI file",
	Long: `Appends the second sequence to the first track by track and writes the
result next to the file as <name>_appended.mid. Both need the same number
of tracks.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tail, err := loadSequence(args[1])
		if err != nil {
			return err
		}
		f := midi.NewFile(args[0])
		f.Decoder = decoder()
		path, err := f.Append(tail)
		if err != nil {
			return err
		}
		log.Info("wrote", "path", path)
		return nil
	},
}
