package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/chord"
	"github.com/jsphweid/gosoul/midi"
	"github.com/jsphweid/gosoul/score"
	"github.com/jsphweid/gosoul/util"
	"github.com/spf13/cobra"
)

var (
	inspectMax    int
	inspectEvents bool
	inspectChords bool
)

func init() {
	inspectCmd.Flags().IntVar(&inspectMax, "max", 0, "inspect at most this many files per directory (0 for all)")
	inspectCmd.Flags().BoolVar(&inspectEvents, "events", false, "print the raw note events instead of the score")
	inspectCmd.Flags().BoolVar(&inspectChords, "chords", false, "print the keys sounding across all tracks whenever they change")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file or dir>...",
	Short: "Prints the score of MIDI files",
	Long:  `Decodes MIDI files, or every MIDI file below a directory, and prints them as YAML scores.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			paths := []string{arg}
			if st, err := os.Stat(arg); err == nil && st.IsDir() {
				if paths, err = util.GatherAllMidiPaths(arg, inspectMax); err != nil {
					return err
				}
			}
			for _, path := range paths {
				if err := inspect(path); err != nil {
					if strict {
						return err
					}
					log.Error("skipping", "path", path, "err", err)
				}
			}
		}
		return nil
	},
}

func inspect(path string) error {
	fmt.Printf("# %v\n", path)
	if inspectEvents || inspectChords {
		stream, err := midi.ReadFile(path)
		if err != nil {
			return err
		}
		if inspectChords {
			for _, s := range chord.Snapshots(stream) {
				fmt.Printf("%6d  %v\n", s.Tick, s.Key())
			}
			return nil
		}
		for i, track := range stream {
			fmt.Printf("track %d\n", i)
			for _, m := range track {
				fmt.Printf("  %v\n", m)
			}
		}
		return nil
	}

	seq, err := loadSequence(path)
	if err != nil {
		return err
	}
	data, err := score.FromSequence(seq).YAML()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
