package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-hdkit/internal/core/application"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testSeedHex  = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	testAddress  = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	testXprv     = "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
)

func TestGenSeed(t *testing.T) {
	t.Run("should return a new mnemonic", func(t *testing.T) {
		out, err := runCLICommand(t, "genseed")
		require.NoError(t, err)
		require.Len(t, strings.Fields(out), 12)
	})

	t.Run("should return a mnemonic of the given size", func(t *testing.T) {
		out, err := runCLICommand(t, "genseed", "--entropy-size", "256")
		require.NoError(t, err)
		require.Len(t, strings.Fields(out), 24)
	})

	t.Run("should return mnemonic details in json", func(t *testing.T) {
		out, err := runCLICommand(t, "--json", "genseed")
		require.NoError(t, err)

		info := application.MnemonicInfo{}
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		require.Len(t, info.Mnemonic, 12)
		require.Equal(t, 128, info.EntropyBits)
	})

	t.Run("should fail with bad entropy size", func(t *testing.T) {
		_, err := runCLICommand(t, "genseed", "--entropy-size", "100")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("should validate a mnemonic given as args", func(t *testing.T) {
		args := append([]string{"validate"}, strings.Fields(testMnemonic)...)
		out, err := runCLICommand(t, args...)
		require.NoError(t, err)
		require.Contains(t, out, testSeedHex)
		require.Contains(t, out, "0011")
	})

	t.Run("should validate a mnemonic in json", func(t *testing.T) {
		out, err := runCLICommand(t, "--json", "validate", "--mnemonic", testMnemonic)
		require.NoError(t, err)

		resp := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Equal(t, testSeedHex, resp["seed"])
		require.Equal(t, "0011", resp["checksum_bits"])
	})

	t.Run("should read the passphrase from terminal", func(t *testing.T) {
		defaultReadPassword := readPassword
		readPassword = func() ([]byte, error) { return []byte("TREZOR"), nil }
		t.Cleanup(func() { readPassword = defaultReadPassword })

		out, err := runCLICommand(
			t, "--json", "validate", "--mnemonic", testMnemonic, "--ask-passphrase",
		)
		require.NoError(t, err)
		require.NotContains(t, out, testSeedHex)
	})

	t.Run("should fail with invalid mnemonic", func(t *testing.T) {
		_, err := runCLICommand(t, "validate", "--mnemonic", strings.Repeat("abandon ", 12))
		require.Error(t, err)
	})

	t.Run("should fail without mnemonic", func(t *testing.T) {
		_, err := runCLICommand(t, "validate")
		var e *invalidUsageError
		require.ErrorAs(t, err, &e)
	})
}

func TestDerive(t *testing.T) {
	t.Run("should derive the default path", func(t *testing.T) {
		out, err := runCLICommand(t, "derive", "--mnemonic", testMnemonic)
		require.NoError(t, err)
		require.Contains(t, out, testAddress)
		require.Contains(t, out, "m/44'/60'/0'/0/0")
	})

	t.Run("should derive from seed in json", func(t *testing.T) {
		out, err := runCLICommand(
			t, "--json", "derive", "--seed", testSeedHex, "--path", "m/44'/60'/0'/0/0",
		)
		require.NoError(t, err)

		res := application.DerivationResult{}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.Equal(t, testAddress, res.Address)
	})

	t.Run("should serialize keys for the given network", func(t *testing.T) {
		out, err := runCLICommand(t, "--network", "testnet", "derive", "--mnemonic", testMnemonic)
		require.NoError(t, err)
		require.Contains(t, out, "tprv")
		require.Contains(t, out, testAddress)
	})

	t.Run("should fail without key material", func(t *testing.T) {
		_, err := runCLICommand(t, "derive")
		require.ErrorIs(t, err, application.ErrMissingKeyMaterial)
	})

	t.Run("should fail with passphrase and ask-passphrase", func(t *testing.T) {
		_, err := runCLICommand(
			t, "derive", "--mnemonic", testMnemonic, "--passphrase", "a", "--ask-passphrase",
		)
		var e *invalidUsageError
		require.ErrorAs(t, err, &e)
	})

	t.Run("should fail with unknown network", func(t *testing.T) {
		_, err := runCLICommand(t, "--network", "liquid", "derive", "--mnemonic", testMnemonic)
		require.Error(t, err)
	})
}

func TestAddresses(t *testing.T) {
	t.Run("should list addresses", func(t *testing.T) {
		out, err := runCLICommand(t, "addresses", "--mnemonic", testMnemonic, "--count", "3")
		require.NoError(t, err)
		require.Contains(t, out, testAddress)
		require.Contains(t, out, "m/44'/60'/0'/0/2")
		require.NotContains(t, out, "m/44'/60'/0'/0/3")
	})

	t.Run("should list addresses from account xpub", func(t *testing.T) {
		out, err := runCLICommand(t, "--json", "addresses", "--mnemonic", testMnemonic, "--count", "2")
		require.NoError(t, err)
		list := application.AddressList{}
		require.NoError(t, json.Unmarshal([]byte(out), &list))

		out, err = runCLICommand(
			t, "--json", "addresses", "--xkey", list.AccountPublicExtendedKey, "--count", "2",
		)
		require.NoError(t, err)
		watchOnly := application.AddressList{}
		require.NoError(t, json.Unmarshal([]byte(out), &watchOnly))
		require.Len(t, watchOnly.Addresses, 2)
		require.Equal(t, list.Addresses[1].Address, watchOnly.Addresses[1].Address)
	})

	t.Run("should fail with too many addresses", func(t *testing.T) {
		_, err := runCLICommand(t, "addresses", "--mnemonic", testMnemonic, "--count", "1001")
		require.Error(t, err)
	})
}

func TestXKey(t *testing.T) {
	out, err := runCLICommand(t, "xkey", testXprv)
	require.NoError(t, err)
	require.Contains(t, out, "3442193e")
	require.Contains(t, out, "0'")

	_, err = runCLICommand(t, "xkey")
	var e *invalidUsageError
	require.ErrorAs(t, err, &e)

	_, err = runCLICommand(t, "xkey", "xpub")
	require.Error(t, err)
}

func TestAddress(t *testing.T) {
	out, err := runCLICommand(t, "--json", "address", strings.ToLower(testAddress))
	require.NoError(t, err)

	info := application.AddressInfo{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, testAddress, info.Address)
	require.False(t, info.IsChecksummed)

	_, err = runCLICommand(t, "address", "0x1234")
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	t.Setenv("HDKIT_ADDRESS_COUNT", "42")

	out, err := runCLICommand(t, "config")
	require.NoError(t, err)
	require.Contains(t, out, "mainnet")
	require.Contains(t, out, "42")
}

func runCLICommand(t *testing.T, args ...string) (string, error) {
	t.Setenv("HDKIT_DATADIR", t.TempDir())

	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"hdkit"}, args...))
	return out.String(), err
}
