package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:      "address",
	Usage:     "validate an address and print its checksummed form",
	ArgsUsage: "<address>",
	Action:    addressAction,
}

func addressAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	svc, err := getPipelineService(ctx)
	if err != nil {
		return err
	}

	info, err := svc.ValidateAddress(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}

	rows := []table.Row{
		{"Address", info.Address},
		{"Checksummed input", info.IsChecksummed},
	}
	return printResult(ctx, info, fieldValueHeader, rows)
}
