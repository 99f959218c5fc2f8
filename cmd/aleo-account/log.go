package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"

	"github.com/suffix-labs/aleo-account/pkg/account"
	"github.com/suffix-labs/aleo-account/pkg/api"
	"github.com/suffix-labs/aleo-account/pkg/record"
	"github.com/suffix-labs/aleo-account/pkg/serial"
)

// backendLog writes every subsystem to stderr so stdout carries only
// command output.
var backendLog = btclog.NewBackend(os.Stderr)

// subsystemLoggers maps each subsystem tag to the function installing its
// logger.
var subsystemLoggers = map[string]func(btclog.Logger){
	account.Subsystem: account.UseLogger,
	record.Subsystem:  record.UseLogger,
	serial.Subsystem:  serial.UseLogger,
	api.Subsystem:     api.UseLogger,
}

// setLogLevels creates one logger per subsystem at the given level.
func setLogLevels(level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	for tag, use := range subsystemLoggers {
		logger := backendLog.Logger(tag)
		logger.SetLevel(lvl)
		use(logger)
	}
	return nil
}
