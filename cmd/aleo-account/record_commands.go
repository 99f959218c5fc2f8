package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/suffix-labs/aleo-account/pkg/api"
)

var (
	programFlag = cli.StringFlag{
		Name:  "program",
		Usage: "the program id, e.g. token.aleo",
	}
	nameFlag = cli.StringFlag{
		Name:  "name",
		Usage: "the record name within the program, e.g. token",
	}
)

var recordCommand = cli.Command{
	Name:     "record",
	Category: "Records",
	Usage:    "Inspect record plaintexts.",
	Description: `
	Each subcommand takes the record text as its argument, or reads it from
	stdin when no argument is given.`,
	Subcommands: []cli.Command{
		{
			Name:      "format",
			Usage:     "Print the canonical form of a record.",
			ArgsUsage: "record",
			Action:    formatRecord,
		},
		{
			Name:      "gates",
			Usage:     "Print the gates balance of a record.",
			ArgsUsage: "record",
			Action:    recordGates,
		},
		{
			Name:      "commitment",
			Usage:     "Compute the commitment of a record.",
			ArgsUsage: "record",
			Flags:     []cli.Flag{programFlag, nameFlag},
			Action:    recordCommitment,
		},
		{
			Name:      "serial-number",
			Usage:     "Derive the serial number of an owned record.",
			ArgsUsage: "record",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key",
					Usage: "the private key of the record owner",
				},
				programFlag,
				nameFlag,
			},
			Action: serialNumber,
		},
	},
}

func formatRecord(ctx *cli.Context) error {
	text, err := argOrStdin(ctx)
	if err != nil {
		return err
	}
	out, err := api.FormatRecord(text)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func recordGates(ctx *cli.Context) error {
	text, err := argOrStdin(ctx)
	if err != nil {
		return err
	}
	gates, err := api.RecordGates(text)
	if err != nil {
		return err
	}
	fmt.Println(gates)
	return nil
}

func programAndName(ctx *cli.Context, cmd string) (string, string, error) {
	if !ctx.IsSet("program") || !ctx.IsSet("name") {
		_ = cli.ShowCommandHelp(ctx, cmd)
		return "", "", errors.New("--program and --name are required")
	}
	return ctx.String("program"), ctx.String("name"), nil
}

func recordCommitment(ctx *cli.Context) error {
	program, name, err := programAndName(ctx, "commitment")
	if err != nil {
		return err
	}
	text, err := argOrStdin(ctx)
	if err != nil {
		return err
	}
	c, err := api.RecordCommitment(text, program, name)
	if err != nil {
		return err
	}
	fmt.Println(c)
	return nil
}

func serialNumber(ctx *cli.Context) error {
	program, name, err := programAndName(ctx, "serial-number")
	if err != nil {
		return err
	}
	if !ctx.IsSet("key") {
		_ = cli.ShowCommandHelp(ctx, "serial-number")
		return errors.New("--key is required")
	}
	text, err := argOrStdin(ctx)
	if err != nil {
		return err
	}
	sn, err := api.SerialNumberString(text, ctx.String("key"), program, name)
	if err != nil {
		return err
	}
	fmt.Println(sn)
	return nil
}
