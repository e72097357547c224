// Package paper simulates the relayer, the order book and the payment channel
// engines in process so the broker can trade without real counterparties.
package paper

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/swapbroker/internal/clock"
)

var ErrUnknownSwap = errors.New("unknown swap hash")

const settlePollInterval = 10 * time.Millisecond

type swap struct {
	preimage []byte
	receiver *Engine
	amount   int64
	settled  bool
}

// Swaps is the simulated payment channel network: it holds the preimage of
// every swap hash and releases it once the swap has been paid.
type Swaps struct {
	mu    sync.Mutex
	swaps map[string]*swap
}

func NewSwaps() *Swaps {
	return &Swaps{swaps: make(map[string]*swap)}
}

// New creates a swap hash with a fresh preimage.
func (s *Swaps) New() (string, error) {
	preimage := make([]byte, chainhash.HashSize)
	if _, err := rand.Read(preimage); err != nil {
		return "", fmt.Errorf("generate preimage: %w", err)
	}
	hash := encode(chainhash.HashB(preimage))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.swaps[hash] = &swap{preimage: preimage}
	return hash, nil
}

// Receive names the engine credited with amount when hash settles.
func (s *Swaps) Receive(hash string, receiver *Engine, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, ok := s.swaps[hash]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSwap, hash)
	}
	sw.receiver = receiver
	sw.amount = amount
	return nil
}

// Settle marks hash paid and credits its receiver once.
func (s *Swaps) Settle(hash string) error {
	s.mu.Lock()
	sw, ok := s.swaps[hash]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSwap, hash)
	}
	if sw.settled {
		s.mu.Unlock()
		return nil
	}
	sw.settled = true
	receiver, amount := sw.receiver, sw.amount
	s.mu.Unlock()

	if receiver != nil {
		receiver.credit(amount)
	}
	return nil
}

// Preimage waits for hash to settle and returns its encoded preimage.
func (s *Swaps) Preimage(ctx context.Context, hash string) (string, error) {
	var preimage []byte
	err := clock.Poll(ctx, settlePollInterval, func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		sw, ok := s.swaps[hash]
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrUnknownSwap, hash)
		}
		preimage = sw.preimage
		return sw.settled, nil
	})
	if err != nil {
		return "", err
	}
	return encode(preimage), nil
}

// Matches reports whether preimage unlocks hash.
func Matches(hash, preimage string) bool {
	raw, err := base64.StdEncoding.DecodeString(preimage)
	if err != nil {
		return false
	}
	return encode(chainhash.HashB(raw)) == hash
}

func encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
