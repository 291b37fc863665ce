package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-hdkit/pkg/wallet"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network whose version bytes are used to serialize
	// extended keys, one of mainnet, testnet, regtest, simnet, signet
	NetworkKey = "NETWORK"
	// EntropySizeKey is the size in bits of the entropy of new mnemonics
	EntropySizeKey = "ENTROPY_SIZE"
	// DerivationPathKey is the default path of the derive command
	DerivationPathKey = "DERIVATION_PATH"
	// AccountPathKey is the default parent path of listed addresses
	AccountPathKey = "ACCOUNT_PATH"
	// AddressCountKey is the default number of listed addresses
	AddressCountKey = "ADDRESS_COUNT"
	// WorkersKey is the max number of goroutines deriving addresses in parallel
	WorkersKey = "WORKERS"
	// DatadirKey is the directory where an optional hdkit.yaml|json|toml
	// config file is looked up. Nothing is ever written there
	DatadirKey = "DATADIR"

	// MaxAddressCount is the max number of addresses listed in one batch
	MaxAddressCount = 1000

	configFileName = "hdkit"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("hdkit", false)

	networks = map[string]*chaincfg.Params{
		"mainnet": &chaincfg.MainNetParams,
		"testnet": &chaincfg.TestNet3Params,
		"regtest": &chaincfg.RegressionNetParams,
		"simnet":  &chaincfg.SimNetParams,
		"signet":  &chaincfg.SigNetParams,
	}
)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("HDKIT")
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(EntropySizeKey, wallet.DefaultEntropySize)
	vip.SetDefault(DerivationPathKey, wallet.DefaultDerivationPath.String())
	vip.SetDefault(AccountPathKey, wallet.DefaultAccountPath.String())
	vip.SetDefault(AddressCountKey, 10)
	vip.SetDefault(WorkersKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)

	if err := readConfigFile(); err != nil {
		return fmt.Errorf("error while reading config file: %s", err)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetNetwork returns the chain params of the configured network
func GetNetwork() *chaincfg.Params {
	return networks[strings.ToLower(GetString(NetworkKey))]
}

// Set overrides the value of key, mostly used by CLI flags
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// Validate checks the current config, included the values overridden with
// Set
func Validate() error {
	return validate()
}

func readConfigFile() error {
	vip.SetConfigName(configFileName)
	vip.AddConfigPath(GetDatadir())

	err := vip.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func validate() error {
	if GetNetwork() == nil {
		return fmt.Errorf(
			"%s must be one of mainnet, testnet, regtest, simnet, signet",
			NetworkKey,
		)
	}

	entropySize := GetInt(EntropySizeKey)
	if entropySize < 128 || entropySize > 256 || entropySize%32 != 0 {
		return fmt.Errorf(
			"%s must be a multiple of 32 in range [128, 256]", EntropySizeKey,
		)
	}

	if _, err := wallet.ParseDerivationPath(GetString(DerivationPathKey)); err != nil {
		return fmt.Errorf("%s: %s", DerivationPathKey, err)
	}
	if _, err := wallet.ParseDerivationPath(GetString(AccountPathKey)); err != nil {
		return fmt.Errorf("%s: %s", AccountPathKey, err)
	}

	count := GetInt(AddressCountKey)
	if count < 1 || count > MaxAddressCount {
		return fmt.Errorf(
			"%s must be in range [1, %d]", AddressCountKey, MaxAddressCount,
		)
	}

	if GetInt(WorkersKey) < 1 {
		return fmt.Errorf("%s must be at least 1", WorkersKey)
	}

	return nil
}
