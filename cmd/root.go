package cmd

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"wish/core"
	"wish/core/config"
	"wish/core/logger"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	fs := afero.NewOsFs()

	configuration, err := config.Load(fs, cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		// A shell must run without setup, so a missing config file
		// falls back to the embedded default.
		return config.Default(fs), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wish [script]",
	Short: "A line-oriented command interpreter.",
	Long: `wish reads commands one line at a time, resolves programs against a
configurable search path and runs the commands of one line in parallel.

With no arguments it runs an interactive prompted session; with a script
argument it runs the script's lines without a prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		return runShell(configuration, args)
	},
}

func runShell(configuration *config.Configuration, args []string) error {
	session := core.NewSession(configuration)

	if fd, err := configuration.OpenEventLog(); err != nil {
		return err
	} else if fd != nil {
		defer fd.Close()
		session.Log = logger.NewJsonLinesLogRecorder(fd).NewSession()
	}

	if fd, err := configuration.CreateTranscript(session.Log.SessionID() + ".transcript"); err != nil {
		return err
	} else if fd != nil {
		defer fd.Close()
		recorder := core.NewRecorder(session.Stdin, session.Stdout, session.Stderr, fd)
		session.Stdout = recorder.Stdout
		session.Stderr = recorder.Stderr

		// On a terminal the shell's echo already lands on stdout, so
		// stdin stays unwrapped and keeps its line editing; piped input
		// is recorded directly.
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			session.Stdin = recorder.Stdin
		}
	}

	if len(args) == 1 {
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		return session.RunScript(args[0], fd)
	}

	return session.RunInteractive()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultConfigurationName, "config path")
}
