package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tuannh982/iplist/iplist"

	log "github.com/sirupsen/logrus"
)

type cliOptions struct {
	ignoreInvalid bool
	verbose       bool
	quiet         bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	logger := log.New()

	root := &cobra.Command{
		Use:   "iplist <file>",
		Short: "Manage a list of IP addresses from a file",
		Example: `	iplist /etc/allowlist.txt
	iplist --ignore-invalid -v show /etc/allowlist.txt
	iplist export /etc/allowlist.txt`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configureLogger(logger, cmd.ErrOrStderr(), opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, logger, opts, args[0])
		},
	}

	root.PersistentFlags().BoolVar(
		&opts.ignoreInvalid,
		"ignore-invalid",
		getenvBool("IPLIST_IGNORE_INVALID", false),
		"Ignore invalid IP addresses (or IPLIST_IGNORE_INVALID)",
	)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Silence output")

	root.AddCommand(newShowCmd(logger, opts))
	root.AddCommand(newExportCmd(logger, opts))
	return root
}

func newShowCmd(logger *log.Logger, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Load the file and print its addresses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, logger, opts, args[0])
		},
	}
}

func newExportCmd(logger *log.Logger, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the validated addresses to a new temporary file and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := load(logger, opts, args[0])
			if err != nil {
				return err
			}
			path, err := l.WriteToTempFile()
			if err != nil {
				logger.Errorf("Failed to export: %v", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func runShow(cmd *cobra.Command, logger *log.Logger, opts *cliOptions, path string) error {
	l, err := load(logger, opts, path)
	if err != nil {
		return err
	}
	addresses := l.Addresses()
	logger.Infof("IP Addresses: %s", strings.Join(addresses, ","))
	out := cmd.OutOrStdout()
	for _, ip := range addresses {
		fmt.Fprintln(out, ip)
	}
	return nil
}

func load(logger *log.Logger, opts *cliOptions, path string) (*iplist.IPList, error) {
	l, err := iplist.New(iplist.Options{
		FilePath:      path,
		IgnoreInvalid: opts.ignoreInvalid,
		Logger:        logger,
	})
	if err != nil {
		logger.Errorf("Failed to load %s: %v", path, err)
		return nil, err
	}
	return l, nil
}

func configureLogger(logger *log.Logger, out io.Writer, opts *cliOptions) error {
	if opts.verbose && opts.quiet {
		return errors.New("--verbose and --quiet are mutually exclusive")
	}
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	switch {
	case opts.verbose:
		logger.SetLevel(log.DebugLevel)
		logger.Info("Verbose logging is enabled.")
	case opts.quiet:
		logger.SetLevel(log.PanicLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return nil
}

func getenvBool(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}
