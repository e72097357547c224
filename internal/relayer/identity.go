package relayer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

// Identity signs relayer requests with the broker's secp256k1 key.
type Identity struct {
	key *btcec.PrivateKey
	now func() time.Time
}

func NewIdentity(key *btcec.PrivateKey) *Identity {
	return &Identity{key: key, now: time.Now}
}

func GenerateIdentity() (*Identity, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate identity key: %w", err)
	}
	return NewIdentity(key), nil
}

// LoadIdentity reads a hex encoded private key from path.
func LoadIdentity(path string) (*Identity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity key: %w", err)
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("decode identity key %s: %w", path, err)
	}
	if len(b) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("identity key %s has %d bytes, want %d", path, len(b), btcec.PrivKeyBytesLen)
	}
	key, _ := btcec.PrivKeyFromBytes(b)
	return NewIdentity(key), nil
}

// Save writes the private key to path readable only by the owner.
func (i *Identity) Save(path string) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(i.key.Serialize())+"\n"), 0o600)
}

// PubKey is the hex encoded compressed public key.
func (i *Identity) PubKey() string {
	return hex.EncodeToString(i.key.PubKey().SerializeCompressed())
}

// Authorize signs "timestamp,nonce,resourceID".
func (i *Identity) Authorize(resourceID string) (Authorization, error) {
	if resourceID == "" {
		return Authorization{}, errors.New("resource id is required for authorization")
	}
	timestamp := i.now().Unix()
	nonce := uuid.NewString()
	sig := ecdsa.Sign(i.key, authorizationDigest(timestamp, nonce, resourceID))
	return Authorization{
		PublicKey: i.PubKey(),
		Timestamp: timestamp,
		Nonce:     nonce,
		Signature: hex.EncodeToString(sig.Serialize()),
	}, nil
}

// VerifyAuthorization checks auth was produced for resourceID by the key it
// names.
func VerifyAuthorization(auth Authorization, resourceID string) error {
	pubBytes, err := hex.DecodeString(auth.PublicKey)
	if err != nil {
		return fmt.Errorf("decode public key: %w", err)
	}
	pub, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}
	sigBytes, err := hex.DecodeString(auth.Signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}
	if !sig.Verify(authorizationDigest(auth.Timestamp, auth.Nonce, resourceID), pub) {
		return errors.New("authorization signature does not match")
	}
	return nil
}

func authorizationDigest(timestamp int64, nonce, resourceID string) []byte {
	return chainhash.HashB([]byte(strconv.FormatInt(timestamp, 10) + "," + nonce + "," + resourceID))
}
