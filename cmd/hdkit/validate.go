package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tdex-network/tdex-hdkit/internal/core/application"
	"github.com/urfave/cli/v2"
)

var validate = cli.Command{
	Name:      "validate",
	Usage:     "validate a mnemonic and print its entropy, checksum and seed",
	ArgsUsage: "[word...]",
	Flags: []cli.Flag{
		&mnemonicFlag,
		&passphraseFlag,
		&askPassphraseFlag,
	},
	Action: validateAction,
}

type validateResponse struct {
	*application.MnemonicInfo
	SeedHex string `json:"seed"`
}

func validateAction(ctx *cli.Context) error {
	mnemonic := getMnemonic(ctx)
	if mnemonic == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	passphrase, err := getPassphrase(ctx)
	if err != nil {
		return err
	}

	svc, err := getPipelineService(ctx)
	if err != nil {
		return err
	}

	info, seedHex, err := svc.InspectMnemonic(ctx.Context, mnemonic, passphrase)
	if err != nil {
		return err
	}

	rows := append(mnemonicInfoRows(info), table.Row{"Seed", seedHex})
	return printResult(ctx, validateResponse{info, seedHex}, fieldValueHeader, rows)
}
