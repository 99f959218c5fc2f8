// aleo-account CLI - Aleo account keys, signatures and records
//
// Example usage:
//   # Create a key and print its view key and address
//   aleo-account new
//
//   # Protect a key with a password
//   aleo-account encrypt APrivateKey1...
//
//   # Sign and verify a message
//   aleo-account sign --key APrivateKey1... --msg "hello"
//   aleo-account verify --addr aleo1... --msg "hello" --sig sign1...
//
//   # Derive the serial number of an owned record
//   aleo-account record serial-number --key APrivateKey1... \
//       --program token.aleo --name token "{ owner: ... }"
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

const version = "0.1.0"

// cfg is loaded before any command runs.
var cfg *config

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[aleo-account] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "aleo-account"
	app.Version = version
	app.Usage = "manage Aleo account keys, signatures and records"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:      "config",
			Value:     defaultConfigFile,
			Usage:     "The path to the YAML configuration file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name: "loglevel",
			Usage: "Logging level for all subsystems " +
				"{trace, debug, info, warn, error, critical, off}. " +
				"Overrides log_level from the config file.",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		c, err := loadConfig(ctx.GlobalString("config"))
		if err != nil {
			return err
		}
		if ctx.GlobalIsSet("loglevel") {
			c.LogLevel = ctx.GlobalString("loglevel")
		}
		if err := setLogLevels(c.LogLevel); err != nil {
			return err
		}
		cfg = c
		return nil
	}
	app.Commands = []cli.Command{
		newCommand,
		fromSeedCommand,
		fromMnemonicCommand,
		mnemonicCommand,
		viewKeyCommand,
		addressCommand,
		encryptCommand,
		decryptCommand,
		signCommand,
		verifyCommand,
		recordCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
