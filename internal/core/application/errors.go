package application

import (
	"errors"
	"fmt"

	"github.com/tdex-network/tdex-hdkit/pkg/wallet"
)

var (
	// ErrMissingKeyMaterial is returned when a request carries none of
	// mnemonic, seed or extended key
	ErrMissingKeyMaterial = fmt.Errorf(
		"%w: one of mnemonic, seed or extended key is required",
		wallet.ErrInvalidParameter,
	)
	// ErrAmbiguousKeyMaterial is returned when a request carries more than one
	// of mnemonic, seed or extended key
	ErrAmbiguousKeyMaterial = fmt.Errorf(
		"%w: only one of mnemonic, seed or extended key must be given",
		wallet.ErrInvalidParameter,
	)
	// ErrInvalidWorkers ...
	ErrInvalidWorkers = errors.New("workers must be at least 1")
	// ErrIndexRangeOverflow is returned when a batch would cross the boundary
	// between normal and hardened indices
	ErrIndexRangeOverflow = fmt.Errorf(
		"%w: start + count must not exceed %d",
		wallet.ErrInvalidParameter, uint64(wallet.MaxIndex)+1,
	)
)
