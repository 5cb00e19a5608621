package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/athanorlabs/go-pasta"
)

// checkCmd defines the configuration options for the check command.
type checkCmd struct {
	Rounds      int    `short:"n" long:"rounds" description:"Random iterations per case"`
	Seed        string `long:"seed" description:"Hex seed to reproduce an earlier run"`
	Parallelism int    `short:"j" long:"parallel" description:"Number of cases to run concurrently"`
}

func newCheckCmd() *checkCmd {
	return &checkCmd{
		Rounds:      pasta.DefaultRounds,
		Parallelism: runtime.NumCPU(),
	}
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *checkCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args) != 0 {
		return errors.New("check takes no arguments")
	}

	opts := []pasta.Option{
		pasta.WithRounds(cmd.Rounds),
		pasta.WithParallelism(cmd.Parallelism),
	}
	if cmd.Seed != "" {
		seed, err := hex.DecodeString(cmd.Seed)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		opts = append(opts, pasta.WithSeed(seed))
	}

	// The selected path is the subject and the other one the reference.
	subject := activeOracle
	reference := pasta.NewOracle(activeCurve.Name, !cfg.Projective)

	ctx, cancel := commandContext()
	defer cancel()
	report, err := pasta.NewChecker(activeCurve, subject, reference, opts...).Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "CASE\tCHECKS\tTIME\tRESULT\n")
	for _, c := range report.Cases {
		result := "ok"
		if c.Err != nil {
			result = c.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", c.Name, c.Checks, c.Duration.Round(time.Microsecond), result)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s against %s, %d checks, seed %x\n",
		report.Curve, report.Subject, report.Reference, report.Checks(), report.Seed)

	return report.Err()
}
