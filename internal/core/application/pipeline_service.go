package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-hdkit/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

// PipelineService exposes every stage of the derivation pipeline: entropy,
// mnemonic, seed, master key, derived key, public key and address
type PipelineService interface {
	GenerateMnemonic(
		ctx context.Context,
		entropyBits int,
	) (*MnemonicInfo, error)
	InspectMnemonic(
		ctx context.Context,
		mnemonic, passphrase string,
	) (info *MnemonicInfo, seedHex string, err error)
	Derive(
		ctx context.Context,
		req DeriveRequest,
	) (*DerivationResult, error)
	DeriveAddresses(
		ctx context.Context,
		req DeriveAddressesRequest,
	) (*AddressList, error)
	InspectExtendedKey(
		ctx context.Context,
		key string,
	) (*ExtendedKeyInfo, error)
	ValidateAddress(
		ctx context.Context,
		address string,
	) (*AddressInfo, error)
}

type pipelineService struct {
	network *chaincfg.Params
	workers int
}

// NewPipelineService returns a service that serializes extended keys with
// the version bytes of network and derives address batches with up to
// workers goroutines. A nil network defaults to mainnet
func NewPipelineService(
	network *chaincfg.Params,
	workers int,
) (PipelineService, error) {
	if workers < 1 {
		return nil, ErrInvalidWorkers
	}
	if network == nil {
		network = &chaincfg.MainNetParams
	}
	return &pipelineService{network, workers}, nil
}

func (p *pipelineService) GenerateMnemonic(
	ctx context.Context,
	entropyBits int,
) (*MnemonicInfo, error) {
	logger := newRequestLogger("GenerateMnemonic")
	logger.WithField("entropy_bits", entropyBits).Debug("start")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if entropyBits == 0 {
		entropyBits = wallet.DefaultEntropySize
	}
	entropy, err := wallet.NewEntropy(entropyBits)
	if err != nil {
		return nil, err
	}
	defer wallet.Zero(entropy)

	info, err := mnemonicInfo(entropy)
	if err != nil {
		return nil, err
	}

	logger.WithField("words", len(info.Mnemonic)).Debug("done")
	return info, nil
}

func (p *pipelineService) InspectMnemonic(
	ctx context.Context,
	mnemonic, passphrase string,
) (*MnemonicInfo, string, error) {
	logger := newRequestLogger("InspectMnemonic")
	logger.WithField("words", len(wallet.SplitMnemonic(mnemonic))).Debug("start")

	entropy, err := wallet.ValidateMnemonic(mnemonic)
	if err != nil {
		return nil, "", err
	}
	defer wallet.Zero(entropy)

	info, err := mnemonicInfo(entropy)
	if err != nil {
		return nil, "", err
	}

	seed, err := deriveSeed(ctx, mnemonic, passphrase)
	if err != nil {
		return nil, "", err
	}
	defer wallet.Zero(seed)

	logger.Debug("done")
	return info, wallet.EncodeHex(seed), nil
}

func (p *pipelineService) Derive(
	ctx context.Context,
	req DeriveRequest,
) (*DerivationResult, error) {
	logger := newRequestLogger("Derive")

	if err := req.validate(); err != nil {
		return nil, err
	}
	path, _ := wallet.ParseDerivationPath(req.DerivationPath)
	logger.WithField("path", path.String()).Debug("start")

	seed, err := p.resolveSeed(ctx, req.Mnemonic, req.Passphrase, req.SeedHex)
	if err != nil {
		return nil, err
	}
	defer wallet.Zero(seed)

	master, err := wallet.NewMaster(seed, p.network)
	if err != nil {
		return nil, err
	}
	masterPub, err := master.Neuter()
	if err != nil {
		return nil, err
	}

	key, err := master.DerivePath(path)
	if err != nil {
		return nil, fmt.Errorf("derive path %s: %w", path, err)
	}
	keyPub, err := key.Neuter()
	if err != nil {
		return nil, err
	}

	privKey, err := key.PrivateKeyBytes()
	if err != nil {
		return nil, err
	}
	defer wallet.Zero(privKey)

	pubKey, err := wallet.PublicKeyFromPrivate(privKey)
	if err != nil {
		return nil, err
	}
	addr, err := wallet.AddressFromPublicKey(pubKey.Uncompressed)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"master_fingerprint": fmt.Sprintf("%08x", master.Fingerprint()),
		"depth":              key.Depth(),
	}).Debug("done")

	return &DerivationResult{
		SeedHex:                  wallet.EncodeHex(seed),
		DerivationPath:           path.String(),
		MasterExtendedKey:        master.String(),
		PublicExtendedKey:        masterPub.String(),
		DerivedExtendedKey:       key.String(),
		DerivedPublicExtendedKey: keyPub.String(),
		PrivateKeyHex:            wallet.EncodeHex(privKey),
		PublicKeyCompressedHex:   wallet.EncodeHex(pubKey.Compressed),
		PublicKeyUncompressedHex: wallet.EncodeHex(pubKey.Uncompressed),
		Address:                  addr.Hex(),
	}, nil
}

func (p *pipelineService) DeriveAddresses(
	ctx context.Context,
	req DeriveAddressesRequest,
) (*AddressList, error) {
	logger := newRequestLogger("DeriveAddresses")

	if err := req.validate(); err != nil {
		return nil, err
	}
	accountPath := req.accountPath()
	logger.WithFields(log.Fields{
		"account_path": accountPath.String(),
		"start":        req.Start,
		"count":        req.Count,
		"hardened":     req.Hardened,
	}).Debug("start")

	root, err := p.resolveRoot(ctx, req)
	if err != nil {
		return nil, err
	}
	account, err := root.DerivePath(accountPath)
	if err != nil {
		return nil, fmt.Errorf("derive account path %s: %w", accountPath, err)
	}
	accountPub := account
	if account.IsPrivate() {
		if accountPub, err = account.Neuter(); err != nil {
			return nil, err
		}
	}

	entries := make([]*AddressEntry, req.Count)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for i := 0; i < req.Count; i++ {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			index := req.Start + uint32(i)
			if req.Hardened {
				index = wallet.Hardened(index)
			}
			child, err := account.Child(index)
			if err != nil {
				if errors.Is(err, wallet.ErrInvalidChildKey) {
					return nil
				}
				return fmt.Errorf("derive child %d: %w", index, err)
			}
			addr, err := child.Address()
			if err != nil {
				return err
			}

			entries[i] = &AddressEntry{
				Index:        index,
				Path:         accountPath.Append(index).String(),
				Address:      addr.Hex(),
				PublicKeyHex: wallet.EncodeHex(child.PublicKeyBytes()),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	list := &AddressList{
		AccountPath:              accountPath.String(),
		AccountPublicExtendedKey: accountPub.String(),
		Addresses:                make([]AddressEntry, 0, req.Count),
	}
	for i, entry := range entries {
		if entry == nil {
			index := req.Start + uint32(i)
			if req.Hardened {
				index = wallet.Hardened(index)
			}
			logger.Warnf("skipping index %d, it does not lead to a valid key", index)
			list.Skipped = append(list.Skipped, index)
			continue
		}
		list.Addresses = append(list.Addresses, *entry)
	}

	logger.WithField("addresses", len(list.Addresses)).Debug("done")
	return list, nil
}

func (p *pipelineService) InspectExtendedKey(
	ctx context.Context,
	key string,
) (*ExtendedKeyInfo, error) {
	logger := newRequestLogger("InspectExtendedKey")
	logger.Debug("start")

	extendedKey, err := wallet.NewKeyFromString(strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}

	pub := extendedKey
	var privKeyHex string
	if extendedKey.IsPrivate() {
		if pub, err = extendedKey.Neuter(); err != nil {
			return nil, err
		}
		privKey, _ := extendedKey.PrivateKeyBytes()
		privKeyHex = wallet.EncodeHex(privKey)
		wallet.Zero(privKey)
	}
	addr, err := extendedKey.Address()
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"network":     extendedKey.Network().Name,
		"fingerprint": fmt.Sprintf("%08x", extendedKey.Fingerprint()),
	}).Debug("done")

	return &ExtendedKeyInfo{
		Network:           extendedKey.Network().Name,
		IsPrivate:         extendedKey.IsPrivate(),
		Depth:             extendedKey.Depth(),
		ParentFingerprint: fmt.Sprintf("%08x", extendedKey.ParentFingerprint()),
		Fingerprint:       fmt.Sprintf("%08x", extendedKey.Fingerprint()),
		ChildIndex:        formatIndex(extendedKey.ChildIndex()),
		ChainCodeHex:      wallet.EncodeHex(extendedKey.ChainCode()),
		PrivateKeyHex:     privKeyHex,
		PublicKeyHex:      wallet.EncodeHex(extendedKey.PublicKeyBytes()),
		PublicExtendedKey: pub.String(),
		Address:           addr.Hex(),
	}, nil
}

func (p *pipelineService) ValidateAddress(
	ctx context.Context,
	address string,
) (*AddressInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	address = strings.TrimSpace(address)
	addr, err := wallet.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return &AddressInfo{
		Input:         address,
		Address:       addr.Hex(),
		IsChecksummed: wallet.ValidateChecksumAddress(address) == nil,
	}, nil
}

// resolveSeed returns the seed either decoded from seedHex or stretched from
// the mnemonic and passphrase. The caller owns the returned buffer
func (p *pipelineService) resolveSeed(
	ctx context.Context,
	mnemonic, passphrase, seedHex string,
) ([]byte, error) {
	if seedHex != "" {
		seed, err := wallet.DecodeHex(seedHex)
		if err != nil {
			return nil, err
		}
		if len(seed) < wallet.MinSeedBytes || len(seed) > wallet.MaxSeedBytes {
			wallet.Zero(seed)
			return nil, wallet.ErrInvalidSeedLength
		}
		return seed, nil
	}

	if _, err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return deriveSeed(ctx, mnemonic, passphrase)
}

func (p *pipelineService) resolveRoot(
	ctx context.Context,
	req DeriveAddressesRequest,
) (*wallet.ExtendedKey, error) {
	if req.ExtendedKey != "" {
		return wallet.NewKeyFromString(strings.TrimSpace(req.ExtendedKey))
	}

	seed, err := p.resolveSeed(ctx, req.Mnemonic, req.Passphrase, req.SeedHex)
	if err != nil {
		return nil, err
	}
	defer wallet.Zero(seed)

	return wallet.NewMaster(seed, p.network)
}

// deriveSeed runs the (slow) seed stretching on a separate goroutine so that
// the caller can give up on it when ctx is done
func deriveSeed(
	ctx context.Context,
	mnemonic, passphrase string,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chSeed := make(chan []byte, 1)
	go func() {
		chSeed <- wallet.NewSeed(mnemonic, passphrase)
	}()

	select {
	case <-ctx.Done():
		go func() {
			wallet.Zero(<-chSeed)
		}()
		return nil, ctx.Err()
	case seed := <-chSeed:
		return seed, nil
	}
}

func mnemonicInfo(entropy []byte) (*MnemonicInfo, error) {
	checksum, err := wallet.ComputeChecksum(entropy)
	if err != nil {
		return nil, err
	}
	indices, err := wallet.PackIndices(entropy, checksum)
	if err != nil {
		return nil, err
	}
	mnemonic, err := wallet.IndicesToWords(indices)
	if err != nil {
		return nil, err
	}

	return &MnemonicInfo{
		Mnemonic:     mnemonic,
		EntropyHex:   wallet.EncodeHex(entropy),
		EntropyBits:  len(entropy) * 8,
		ChecksumBits: checksum.String(),
		WordIndices:  indices,
	}, nil
}

func formatIndex(index uint32) string {
	if wallet.IsHardened(index) {
		return fmt.Sprintf("%d'", index-wallet.HardenedKeyStart)
	}
	return fmt.Sprintf("%d", index)
}

func newRequestLogger(method string) *log.Entry {
	return log.WithFields(log.Fields{
		"request_id": uuid.New().String(),
		"method":     method,
	})
}
