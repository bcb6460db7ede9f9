package cmd

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/midi"
	"github.com/jsphweid/gosoul/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write <score> [out.mid]",
	Short: "Writes a score as a MIDI file",
	Long: `Writes a YAML or JSON score as a Standard MIDI File. Without an output
path the file lands in OUTPUT_DIR, named after the score.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ""
		if len(args) == 2 {
			out = args[1]
		}
		path, err := Write(args[0], out)
		if err != nil {
			return err
		}
		log.Info("wrote", "path", path)
		return nil
	},
}

// Write converts the score at in and returns the path written.
func Write(in, out string) (string, error) {
	seq, err := loadSequence(in)
	if err != nil {
		return "", err
	}
	if out == "" {
		if err := util.EnsureDir(constants.GetOutputDir()); err != nil {
			return "", err
		}
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out = filepath.Join(constants.GetOutputDir(), name)
	}
	f := midi.NewFile(out)
	if err := f.Write(seq); err != nil {
		return "", err
	}
	return f.Path, nil
}
