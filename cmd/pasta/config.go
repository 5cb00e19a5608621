package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/athanorlabs/go-pasta"
	"github.com/athanorlabs/go-pasta/pallas"
	"github.com/athanorlabs/go-pasta/types"
)

const (
	defaultDebugLevel = "info"
	defaultTimeout    = time.Minute
)

// config defines the global configuration options. Options can also be set
// in the [Application Options] section of the file named by --configfile;
// command line options take precedence.
type config struct {
	ConfigFile string        `short:"C" long:"configfile" description:"Path to an ini configuration file"`
	Curve      string        `short:"c" long:"curve" description:"Curve to operate on {Pallas, Vesta}"`
	Projective bool          `short:"p" long:"projective" description:"Evaluate affine operations with the projective formulas"`
	DebugLevel string        `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	Timeout    time.Duration `long:"timeout" description:"Abort an operation after this long"`
}

var (
	cfg *config

	// Set up by setupGlobalConfig.
	activeCurve  pasta.Curve
	activeOracle types.ProjectiveOracle

	// out receives command results.
	out io.Writer = os.Stdout
)

func defaultConfig() *config {
	return &config{
		Curve:      pallas.Name,
		DebugLevel: defaultDebugLevel,
		Timeout:    defaultTimeout,
	}
}

// loadConfigFile pre-parses args for --configfile and, if one is given,
// loads it into parser. Command line options are applied afterwards by the
// caller and override the file.
func loadConfigFile(parser *flags.Parser, args []string) error {
	preCfg := *cfg
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	if _, err := preParser.ParseArgs(args); err != nil {
		return err
	}
	if preCfg.ConfigFile == "" {
		return nil
	}

	if err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// setupGlobalConfig validates the global options and selects the curve
// oracle. Every command calls it before doing any work.
func setupGlobalConfig() error {
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	var curve pasta.Curve
	for _, c := range []pasta.Curve{pasta.Pallas, pasta.Vesta} {
		if strings.EqualFold(cfg.Curve, c.Name) {
			curve = c
		}
	}
	if curve.Name == "" {
		return fmt.Errorf("unknown curve %q -- supported curves are %s and %s",
			cfg.Curve, pasta.Pallas.Name, pasta.Vesta.Name)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}

	activeCurve = curve
	activeOracle = pasta.NewOracle(curve.Name, cfg.Projective)
	log.Debugf("Using %s", activeOracle.Name())
	return nil
}

// commandContext returns the context a command runs under.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Timeout)
}
