package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var (
	mnemonicFlag = cli.StringFlag{
		Name:    "mnemonic",
		Aliases: []string{"m"},
		Usage:   "the space separated BIP39 mnemonic",
	}
	seedFlag = cli.StringFlag{
		Name:  "seed",
		Usage: "the hex encoded seed, alternative to mnemonic",
	}
	passphraseFlag = cli.StringFlag{
		Name:  "passphrase",
		Usage: "the optional BIP39 passphrase",
	}
	askPassphraseFlag = cli.BoolFlag{
		Name:  "ask-passphrase",
		Usage: "read the BIP39 passphrase from terminal without echoing it",
	}
)

// readPassword is overridden in tests
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(syscall.Stdin))
}

func getPassphrase(ctx *cli.Context) (string, error) {
	if !ctx.Bool(askPassphraseFlag.Name) {
		return ctx.String(passphraseFlag.Name), nil
	}
	if ctx.IsSet(passphraseFlag.Name) {
		return "", &invalidUsageError{ctx, ctx.Command.Name}
	}

	fmt.Fprint(os.Stderr, "passphrase: ")
	passphrase, err := readPassword()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(passphrase), nil
}

// getMnemonic returns the mnemonic given either with flag or as positional
// arguments
func getMnemonic(ctx *cli.Context) string {
	if mnemonic := ctx.String(mnemonicFlag.Name); mnemonic != "" {
		return mnemonic
	}
	return strings.Join(ctx.Args().Slice(), " ")
}
