package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"

	"github.com/athanorlabs/go-pasta"
)

// Loggers per subsystem. All of them write to a single backend on stderr so
// that stdout only carries command results.
var (
	backendLog = btclog.NewBackend(os.Stderr)

	log     = backendLog.Logger("MAIN")
	pstaLog = backendLog.Logger("PSTA")
)

// subsystemLoggers maps each subsystem identifier to its logger.
var subsystemLoggers = map[string]btclog.Logger{
	"MAIN": log,
	"PSTA": pstaLog,
}

func init() {
	pasta.UseLogger(pstaLog)
}

// setLogLevels sets the level of every subsystem logger.
func setLogLevels(logLevel string) error {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return fmt.Errorf("invalid debug level %q", logLevel)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}
