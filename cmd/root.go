package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/codec"
	"github.com/jsphweid/gosoul/midi"
	"github.com/jsphweid/gosoul/model"
	"github.com/jsphweid/gosoul/score"
	"github.com/jsphweid/gosoul/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	strict  bool
)

var rootCmd = &cobra.Command{
	Use:          "gosoul",
	Short:        "Write, read and play MIDI sequences",
	Long:         `Turns scores of notes and chords into Standard MIDI Files and back.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on malformed note events instead of skipping them")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func decoder() codec.Decoder {
	return codec.Decoder{Strict: strict}
}

// loadSequence reads a .mid file or a score document.
func loadSequence(path string) (*model.Sequence, error) {
	if util.IsMidiPath(path) {
		f := midi.NewFile(path)
		f.Decoder = decoder()
		return f.Sequence()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %v", path)
	}
	doc, err := score.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %v", path)
	}
	return doc.Sequence()
}
