package main

import (
	"github.com/spf13/cobra"

	"multibody-kinematics/pkg/log"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	logLevel  string
	logFormat string
	logger    *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "kinctl",
		Short:        "Forward kinematics of multibody trees",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	root.AddCommand(newModelsCmd(a))
	root.AddCommand(newFKCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newSymbolicCmd(a))
	return root
}

// setupLogging builds the logger from the environment, then flags.
func (a *app) setupLogging(cmd *cobra.Command) {
	l := log.New("kinctl")
	l.SetWriter(cmd.ErrOrStderr())
	log.ConfigureFromEnv(l)
	if a.logLevel != "" {
		l.SetLevel(log.ParseLevel(a.logLevel))
	}
	if a.logFormat != "" {
		l.SetFormat(log.ParseFormat(a.logFormat))
	}
	a.logger = l
	log.SetDefaultLogger(l)
}

// applyRunLogging applies a run file's [log] section unless the matching
// flag was given.
func (a *app) applyRunLogging(cmd *cobra.Command, level log.LogLevel, format log.OutputFormat) {
	if a.logger == nil {
		a.setupLogging(cmd)
	}
	if !cmd.Flags().Changed("log-level") {
		a.logger.SetLevel(level)
	}
	if !cmd.Flags().Changed("log-format") {
		a.logger.SetFormat(format)
	}
}
