package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/midi"
	"github.com/jsphweid/gosoul/player"
	"github.com/jsphweid/gosoul/util"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	playPort      int
	playTranspose int
)

func init() {
	playCmd.Flags().IntVarP(&playPort, "port", "p", constants.GetMidiOutPort(), "midi output port (MIDI_OUT_PORT)")
	playCmd.Flags().IntVarP(&playTranspose, "transpose", "t", 0, "semitones to shift every pitch")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <score or file.mid>...",
	Short: "Plays sequences on a MIDI output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()

		p, release, err := player.Open(playPort)
		if err != nil {
			return err
		}
		defer release()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		for _, path := range args {
			log.Info("playing", "path", path)
			if util.IsMidiPath(path) && playTranspose == 0 {
				// play the file as is, including tempo changes
				stream, err := midi.ReadFile(path)
				if err != nil {
					return err
				}
				if err := p.Play(ctx, stream); err != nil {
					return err
				}
				continue
			}
			seq, err := loadSequence(path)
			if err != nil {
				return err
			}
			seq.Transpose(playTranspose)
			if err := p.PlaySequence(ctx, seq); err != nil {
				return err
			}
		}
		return nil
	},
}
