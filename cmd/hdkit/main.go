package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-hdkit/internal/config"
	"github.com/tdex-network/tdex-hdkit/internal/core/application"
	"github.com/urfave/cli/v2"
)

const appConfigKey = "appConfig"

var (
	version = "dev"

	networkFlag = cli.StringFlag{
		Name:    "network",
		Aliases: []string{"n"},
		Usage:   "the network of serialized extended keys: mainnet, testnet, regtest, simnet or signet",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "print results in json format",
	}
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = version
	app.Name = "hdkit"
	app.Usage = "Command line toolkit for BIP39 mnemonics, BIP32 keys and addresses"
	app.Metadata = map[string]interface{}{}
	app.Flags = []cli.Flag{
		&networkFlag,
		&jsonFlag,
	}
	app.Before = initApp
	app.Commands = append(
		app.Commands,
		&configCmd,
		&genseed,
		&validate,
		&derive,
		&addresses,
		&xkey,
		&address,
	)

	return app
}

func initApp(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	if ctx.IsSet(networkFlag.Name) {
		config.Set(config.NetworkKey, ctx.String(networkFlag.Name))
		if err := config.Validate(); err != nil {
			return err
		}
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	appConfig := &application.Config{
		Network: config.GetNetwork(),
		Workers: config.GetInt(config.WorkersKey),
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}
	ctx.App.Metadata[appConfigKey] = appConfig

	log.WithFields(log.Fields{
		"network": appConfig.Network.Name,
		"workers": appConfig.Workers,
	}).Debug("config loaded")
	return nil
}

func getPipelineService(ctx *cli.Context) (application.PipelineService, error) {
	appConfig, ok := ctx.App.Metadata[appConfigKey].(*application.Config)
	if !ok {
		return nil, errors.New("application config is not initialized")
	}
	return appConfig.PipelineService(), nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[hdkit] %v\n", err)
	}
	os.Exit(1)
}
