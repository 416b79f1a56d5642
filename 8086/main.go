package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vishen/perfaware/decoder"
)

type options struct {
	policy   decoder.Policy
	format   string
	debug    bool
	logLevel string
}

func main() {
	os.Exit(main1())
}

func main1() int {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "8086 [flags] <file|->",
		Short: "Decode 8086 MOV instructions",
		Long: `Decode a binary file of 8086 machine code into MOV assembly, one
instruction per line. Pass - to read the program from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(stderr, o.logLevel)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return err
			}
			if err := run(o, args[0], stdin, stdout, log); err != nil {
				log.WithError(err).Error("decoding failed")
				return err
			}
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(stderr, "%v\n\n%s", err, cmd.UsageString())
		return err
	})

	cmd.Flags().Var(&o.policy, "on-unknown", "what to do with undecodable bytes: stop, skip or placeholder")
	cmd.Flags().StringVar(&o.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "append each instruction's bytes in binary")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "warn", "stderr log level")

	// cobra reports argument errors before RunE runs
	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n\n%s", err, cmd.UsageString())
			return err
		}
		return nil
	}
	return cmd
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

func run(o options, path string, stdin io.Reader, stdout io.Writer, log *logrus.Logger) error {
	out := bufio.NewWriter(stdout)
	p, err := newPrinter(o.format, o.debug, out)
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"input":  path,
		"policy": o.policy,
	}
	var src io.ByteReader
	if path == "-" {
		src = bufio.NewReader(stdin)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		c := decoder.NewCursor(data)
		fields["size"] = c.Len()
		src = c
	}
	log.WithFields(fields).Debug("decoding")

	d := decoder.New(src, decoder.Config{Policy: o.policy, Logger: log})
	decodeErr := d.Decode(p.print)
	if err := out.Flush(); err != nil && decodeErr == nil {
		return fmt.Errorf("write output: %w", err)
	}
	return decodeErr
}
