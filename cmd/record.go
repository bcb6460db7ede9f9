package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/event"
	"github.com/jsphweid/gosoul/midi"
	"github.com/jsphweid/gosoul/recorder"
	"github.com/jsphweid/gosoul/util"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	recordPort  int
	recordBPM   float64
	recordQuiet time.Duration
)

func init() {
	recordCmd.Flags().IntVarP(&recordPort, "port", "p", constants.GetMidiInPort(), "midi input port (MIDI_IN_PORT)")
	recordCmd.Flags().Float64Var(&recordBPM, "bpm", constants.DefaultTempo, "tempo used to turn time into ticks")
	recordCmd.Flags().DurationVar(&recordQuiet, "quiet", 3*time.Second, "silence after which a take is saved")
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Records from a MIDI input",
	Long: `Listens to a MIDI input until interrupted. Whenever the input goes quiet
the take so far is written to OUTPUT_DIR under a random name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()

		dir := constants.GetOutputDir()
		if err := util.EnsureDir(dir); err != nil {
			return err
		}

		r := recorder.New(recordBPM, recordQuiet, func(take event.Stream) {
			saveTake(dir, take)
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := r.Listen(ctx, recordPort); err != nil {
			return err
		}

		if take := r.Take(); take != nil {
			saveTake(dir, take)
		}
		return nil
	},
}

func saveTake(dir string, take event.Stream) {
	path := filepath.Join(dir, uuid.NewString()+".mid")
	if err := midi.WriteFile(path, take); err != nil {
		log.Error("could not save take", "path", path, "err", err)
		return
	}
	log.Info("saved take", "path", path)
}
