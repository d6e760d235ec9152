package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wish/core"
)

var (
	replayMaxSleep time.Duration
	replayByteRate int64
)

// replayCmd plays a recorded session transcript back to the terminal.
var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay a recorded session in the terminal.",
	Long:  `Plays a recorded session transcript back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		colors := core.NewColorPrinter(true, cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), colors.Sprintf(core.ColorBoldCyan, "=== %s ===\n", args[0]))

		return core.Replay(fd, cmd.OutOrStdout(),
			core.MaxSleep(replayMaxSleep),
			core.ByteRate(replayByteRate))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().DurationVarP(&replayMaxSleep, "max-sleep", "s", 3*time.Second, "maximum time playback can be idle (e.g. 3s, 100ms)")
	replayCmd.Flags().Int64VarP(&replayByteRate, "rate", "r", 0, "playback byte rate cap per second, 0 for unlimited")
}
