package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tdex-network/tdex-hdkit/internal/config"
	"github.com/tdex-network/tdex-hdkit/internal/core/application"
	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:  "genseed",
	Usage: "generate a new random mnemonic",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "entropy-size",
			Usage: "the size in bits of the entropy: 128, 160, 192, 224 or 256",
		},
		&cli.BoolFlag{
			Name:  "details",
			Usage: "print entropy, checksum and word indices along with the mnemonic",
		},
	},
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	svc, err := getPipelineService(ctx)
	if err != nil {
		return err
	}

	entropySize := config.GetInt(config.EntropySizeKey)
	if ctx.IsSet("entropy-size") {
		entropySize = ctx.Int("entropy-size")
	}

	info, err := svc.GenerateMnemonic(ctx.Context, entropySize)
	if err != nil {
		return err
	}

	if !ctx.Bool("details") && !ctx.Bool(jsonFlag.Name) {
		fmt.Fprintln(ctx.App.Writer, strings.Join(info.Mnemonic, " "))
		return nil
	}
	return printResult(ctx, info, fieldValueHeader, mnemonicInfoRows(info))
}

func mnemonicInfoRows(info *application.MnemonicInfo) []table.Row {
	indices := make([]string, 0, len(info.WordIndices))
	for _, i := range info.WordIndices {
		indices = append(indices, fmt.Sprintf("%d", i))
	}
	return []table.Row{
		{"Mnemonic", strings.Join(info.Mnemonic, " ")},
		{"Entropy", info.EntropyHex},
		{"Entropy bits", info.EntropyBits},
		{"Checksum bits", info.ChecksumBits},
		{"Word indices", strings.Join(indices, " ")},
	}
}
