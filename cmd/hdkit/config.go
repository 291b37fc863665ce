package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tdex-network/tdex-hdkit/internal/config"
	"github.com/urfave/cli/v2"
)

var configKeys = []string{
	config.NetworkKey,
	config.EntropySizeKey,
	config.DerivationPathKey,
	config.AccountPathKey,
	config.AddressCountKey,
	config.WorkersKey,
	config.LogLevelKey,
	config.DatadirKey,
}

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "print the current configuration, read from env and config file",
	Action: configAction,
}

func configAction(ctx *cli.Context) error {
	resp := make(map[string]string, len(configKeys))
	rows := make([]table.Row, 0, len(configKeys))
	for _, key := range configKeys {
		value := config.GetString(key)
		resp[key] = value
		rows = append(rows, table.Row{key, value})
	}
	return printResult(ctx, resp, table.Row{"Key", "Value"}, rows)
}
