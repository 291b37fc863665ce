package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

var xkey = cli.Command{
	Name:      "xkey",
	Usage:     "decode a base58 extended key and print its fields",
	ArgsUsage: "<xprv|xpub>",
	Action:    xkeyAction,
}

func xkeyAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	svc, err := getPipelineService(ctx)
	if err != nil {
		return err
	}

	info, err := svc.InspectExtendedKey(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}

	rows := []table.Row{
		{"Network", info.Network},
		{"Private", info.IsPrivate},
		{"Depth", info.Depth},
		{"Parent fingerprint", info.ParentFingerprint},
		{"Fingerprint", info.Fingerprint},
		{"Child index", info.ChildIndex},
		{"Chain code", info.ChainCodeHex},
	}
	if info.IsPrivate {
		rows = append(rows, table.Row{"Private key", info.PrivateKeyHex})
	}
	rows = append(rows,
		table.Row{"Public key", info.PublicKeyHex},
		table.Row{"xpub", info.PublicExtendedKey},
		table.Row{"Address", info.Address},
	)
	return printResult(ctx, info, fieldValueHeader, rows)
}
