package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tdex-network/tdex-hdkit/internal/config"
	"github.com/tdex-network/tdex-hdkit/internal/core/application"
	"github.com/urfave/cli/v2"
)

var derive = cli.Command{
	Name:  "derive",
	Usage: "derive the key at the given path and print every step from seed to address",
	Flags: []cli.Flag{
		&mnemonicFlag,
		&seedFlag,
		&passphraseFlag,
		&askPassphraseFlag,
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "the absolute derivation path, defaults to the configured one",
		},
	},
	Action: deriveAction,
}

func deriveAction(ctx *cli.Context) error {
	passphrase, err := getPassphrase(ctx)
	if err != nil {
		return err
	}
	path := ctx.String("path")
	if path == "" {
		path = config.GetString(config.DerivationPathKey)
	}

	svc, err := getPipelineService(ctx)
	if err != nil {
		return err
	}

	res, err := svc.Derive(ctx.Context, application.DeriveRequest{
		Mnemonic:       ctx.String(mnemonicFlag.Name),
		Passphrase:     passphrase,
		SeedHex:        ctx.String(seedFlag.Name),
		DerivationPath: path,
	})
	if err != nil {
		return err
	}

	rows := []table.Row{
		{"Seed", res.SeedHex},
		{"Master xprv", res.MasterExtendedKey},
		{"Master xpub", res.PublicExtendedKey},
		{"Derivation path", res.DerivationPath},
		{"Derived xprv", res.DerivedExtendedKey},
		{"Derived xpub", res.DerivedPublicExtendedKey},
		{"Private key", res.PrivateKeyHex},
		{"Public key (compressed)", res.PublicKeyCompressedHex},
		{"Public key (uncompressed)", res.PublicKeyUncompressedHex},
		{"Address", res.Address},
	}
	return printResult(ctx, res, fieldValueHeader, rows)
}
