package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tdex-network/tdex-hdkit/internal/config"
	"github.com/tdex-network/tdex-hdkit/internal/core/application"
	"github.com/tdex-network/tdex-hdkit/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var addresses = cli.Command{
	Name:  "addresses",
	Usage: "derive a range of sibling addresses below an account key",
	Flags: []cli.Flag{
		&mnemonicFlag,
		&seedFlag,
		&passphraseFlag,
		&askPassphraseFlag,
		&cli.StringFlag{
			Name:  "xkey",
			Usage: "the base58 extended key, private or public, to derive from",
		},
		&cli.StringFlag{
			Name: "account-path",
			Usage: "the path of the account key, absolute for mnemonic and seed, " +
				"relative to xkey otherwise",
		},
		&cli.UintFlag{
			Name:  "start",
			Usage: "the index of the first address",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "the number of addresses, defaults to the configured one",
		},
		&cli.BoolFlag{
			Name:  "hardened",
			Usage: "derive hardened children",
		},
	},
	Action: addressesAction,
}

func addressesAction(ctx *cli.Context) error {
	passphrase, err := getPassphrase(ctx)
	if err != nil {
		return err
	}

	accountPath := ctx.String("account-path")
	if accountPath == "" && ctx.String("xkey") == "" {
		accountPath = config.GetString(config.AccountPathKey)
	}
	start := ctx.Uint("start")
	if start > wallet.MaxIndex {
		return fmt.Errorf("start must be in range [0, %d]", wallet.MaxIndex)
	}
	count := config.GetInt(config.AddressCountKey)
	if ctx.IsSet("count") {
		count = ctx.Int("count")
	}

	svc, err := getPipelineService(ctx)
	if err != nil {
		return err
	}

	list, err := svc.DeriveAddresses(ctx.Context, application.DeriveAddressesRequest{
		Mnemonic:    ctx.String(mnemonicFlag.Name),
		Passphrase:  passphrase,
		SeedHex:     ctx.String(seedFlag.Name),
		ExtendedKey: ctx.String("xkey"),
		AccountPath: accountPath,
		Start:       uint32(start),
		Count:       count,
		Hardened:    ctx.Bool("hardened"),
	})
	if err != nil {
		return err
	}

	if ctx.Bool(jsonFlag.Name) {
		return printJSON(ctx.App.Writer, list)
	}

	fmt.Fprintf(ctx.App.Writer, "account %s %s\n", list.AccountPath, list.AccountPublicExtendedKey)
	rows := make([]table.Row, 0, len(list.Addresses))
	for _, a := range list.Addresses {
		rows = append(rows, table.Row{a.Path, a.Address, a.PublicKeyHex})
	}
	printTable(ctx.App.Writer, table.Row{"Path", "Address", "Public key"}, rows)
	for _, index := range list.Skipped {
		fmt.Fprintf(ctx.App.Writer, "skipped invalid index %d\n", index)
	}
	return nil
}
