package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/transport"
)

var captureLast bool

func init() {
	captureCmd.Flags().BoolVar(&captureLast, "last", false, "Only print the final frame")

	rootCmd.AddCommand(captureCmd)
}

var captureCmd = &cobra.Command{
	Use:   "capture <file.jsonl>",
	Short: "Print the frames recorded by 'run --capture'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		frames, err := transport.ReadCapture(f)
		if err != nil {
			return err
		}

		fmt.Printf("File: %s\n", args[0])
		fmt.Printf("Frames: %d\n\n", len(frames))
		if captureLast && len(frames) > 0 {
			frames = frames[len(frames)-1:]
		}

		for _, rec := range frames {
			msg, err := rec.Message()
			if err != nil {
				fmt.Printf("%v\n\n", err)
				continue
			}
			fmt.Printf("#%d %s -> %s (%d bytes)\n", rec.MessageNum, rec.Timestamp.Format("15:04:05.000"), msg.Target, rec.PayloadLen)
			printFrame(msg.Data)
			fmt.Println()
		}
		return nil
	},
}

// printFrame draws a frame inside a border. Frames of the wrong size are
// reported instead.
func printFrame(frame display.Frame) {
	if len(frame) != display.Rows*display.Cols {
		fmt.Printf("  (malformed frame: %d cells)\n", len(frame))
		return
	}
	border := "+" + strings.Repeat("-", display.Cols) + "+"
	fmt.Println(border)
	for r := 0; r < display.Rows; r++ {
		fmt.Printf("|%s|\n", frame.Text(r))
	}
	fmt.Println(border)
}
