// Command scheme is a REPL front end around the scheme package. The
// library itself never reads a file, writes a log, or touches an
// environment variable on its own, so all of that ambient machinery
// lives here instead, in a thin shell wrapped around the interpreter.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Yorky1/scheme"
)

// config keys, resolved by viper from flag, then SCHEME_-prefixed env
// var, then an optional config file, in that order.
const (
	keyHistoryFile = "history-file"
	keyLogLevel    = "log-level"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "A read-eval-print loop for a small Scheme interpreter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(v)
		},
	}

	var flags *pflag.FlagSet = cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.String(keyHistoryFile, defaultHistoryFile(), "path to the REPL history file")
	flags.String(keyLogLevel, "disabled", "log level: debug, info, warn, error, disabled")

	v.BindPFlag(keyHistoryFile, flags.Lookup(keyHistoryFile))
	v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))
	v.SetEnvPrefix("scheme")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName(".scheme")
	v.AddConfigPath("$HOME")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "scheme: ignoring config file error:", err)
		}
	}

	return cmd
}

// normalizeFlagName treats dashes and underscores in a flag name as
// equivalent, so --history-file and --history_file resolve to the same
// flag.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// defaultHistoryFile places the history file in the user's home
// directory, falling back to a relative path if the home directory
// cannot be determined.
func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scheme_history"
	}
	return filepath.Join(home, ".scheme_history")
}

func runRepl(v *viper.Viper) error {
	logger := buildLogger(v.GetString(keyLogLevel))

	interp := scheme.NewInterpreter(scheme.WithLogger(logger))
	fmt.Printf("scheme %s - Ctrl-D or (exit) to quit\n", interp.ID())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "scheme> ",
		HistoryFile:     v.GetString(keyHistoryFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if line == "(exit)" {
			return nil
		}

		result, err := interp.Run(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(result)
	}
}

// buildLogger maps the --log-level flag to a zerolog.Logger writing to
// stderr, so REPL output on stdout stays clean of structured log lines.
func buildLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.Disabled
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
