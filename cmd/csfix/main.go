package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"csfix/internal/config"
	"csfix/internal/diag"
	"csfix/internal/logs"
	"csfix/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "csfix",
	Short: "PHP coding standards fixer",
	Long:  `csfix rewrites PHP sources to follow the PSR-1, PSR-2 and Symfony coding standards`,
	// ошибки печатаем сами, см. main
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Root().PersistentFlags().GetString("log-level")
		if err != nil {
			return err
		}
		if err := logs.SetLevel(level); err != nil {
			return err
		}
		logger = logs.New(logs.Options{})

		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		if _, err := parseSwitchMode("color", mode); err != nil {
			return err
		}
		color.NoColor = !useColor(cmd, os.Stdout)
		return nil
	},
}

// logger is replaced in PersistentPreRunE once --log-level is known.
var logger = logs.Discard()

// exitError carries a process status without an error message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and persistent flags and runs the root
// command. Configuration errors are printed with their diagnostic code.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("quiet", false, "print failures only")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	os.Exit(run())
}

func run() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	if code := config.CodeOf(err); code != diag.CfgInfo {
		fmt.Fprintf(os.Stderr, "error %s: %v\n", code.ID(), err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	logger.Debug("command failed", slog.Any("err", err))
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor honours --color; auto also respects NO_COLOR.
func useColor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	mode, _ := parseSwitchMode("color", value)
	return mode.resolve(os.Getenv("NO_COLOR") == "" && f != nil && isTerminal(f))
}

// stdoutFile returns the command's output as a file when it is one.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
