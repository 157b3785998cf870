package signing

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/natefinch/atomic"

	"github.com/aamultisig/go-aamultisig/hash"
)

// PrivateKeySize size of the private key in bytes.
const PrivateKeySize = secp256k1.PrivKeyBytesLen

type signerOption struct {
	priv *secp256k1.PrivateKey
	file string
}

// SignerOptionFunc modifies KeySigner.
type SignerOptionFunc func(*signerOption) error

// ToFile writes the private key to a file after creation.
func ToFile(path string) SignerOptionFunc {
	return func(opt *signerOption) error {
		if opt.file != "" {
			return errors.New("invalid option ToFile: file already set")
		}
		opt.file = path
		return nil
	}
}

// FromFile loads the hex encoded private key from a file.
func FromFile(path string) SignerOptionFunc {
	return func(opt *signerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option FromFile: private key already set")
		}
		if opt.file != "" {
			return errors.New("invalid option FromFile: file already set")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to open key file at %s: %w", path, err)
		}
		data = bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(data), []byte("0x")))
		if n := hex.DecodedLen(len(data)); n != PrivateKeySize {
			return fmt.Errorf("invalid key size %d/%d for %s", n, PrivateKeySize, filepath.Base(path))
		}
		dst := make([]byte, PrivateKeySize)
		if _, err := hex.Decode(dst, data); err != nil {
			return fmt.Errorf("decoding private key in %s: %w", filepath.Base(path), err)
		}
		priv, err := parseKey(dst)
		if err != nil {
			return fmt.Errorf("key in %s: %w", filepath.Base(path), err)
		}
		opt.priv = priv
		opt.file = path
		return nil
	}
}

// WithPrivateKey sets the private key used by KeySigner.
func WithPrivateKey(key []byte) SignerOptionFunc {
	return func(opt *signerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithPrivateKey: private key already set")
		}
		priv, err := parseKey(key)
		if err != nil {
			return err
		}
		opt.priv = priv
		return nil
	}
}

// WithKeyFromRand generates the private key from the provided randomness source.
func WithKeyFromRand(rand io.Reader) SignerOptionFunc {
	return func(opt *signerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithKeyFromRand: private key already set")
		}
		buf := make([]byte, PrivateKeySize)
		for {
			if _, err := io.ReadFull(rand, buf); err != nil {
				return fmt.Errorf("could not generate key: %w", err)
			}
			priv, err := parseKey(buf)
			if err == nil {
				opt.priv = priv
				return nil
			}
		}
	}
}

func parseKey(key []byte) (*secp256k1.PrivateKey, error) {
	if len(key) != PrivateKeySize {
		return nil, fmt.Errorf("invalid key length %d", len(key))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(key); overflow {
		return nil, errors.New("key is not less than the curve order")
	}
	if scalar.IsZero() {
		return nil, errors.New("key is zero")
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// KeySigner signs digests with a secp256k1 key.
type KeySigner struct {
	priv *secp256k1.PrivateKey
	addr common.Address
	file string
}

// NewKeySigner returns a signer. If no key option is provided new key is generated.
func NewKeySigner(opts ...SignerOptionFunc) (*KeySigner, error) {
	cfg := &signerOption{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.priv == nil {
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, fmt.Errorf("could not generate key: %w", err)
		}
		cfg.priv = priv
	}
	if cfg.file != "" {
		if err := persist(cfg.file, cfg.priv); err != nil {
			return nil, err
		}
	}
	return &KeySigner{
		priv: cfg.priv,
		addr: PubkeyToAddress(cfg.priv.PubKey()),
		file: cfg.file,
	}, nil
}

func persist(path string, priv *secp256k1.PrivateKey) error {
	encoded := []byte(hex.EncodeToString(priv.Serialize()))
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("stat key file %s: %w", filepath.Base(path), err)
	case bytes.Equal(bytes.TrimPrefix(bytes.TrimSpace(existing), []byte("0x")), encoded):
		return nil
	default:
		return fmt.Errorf("save key file %s: %w", filepath.Base(path), fs.ErrExist)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("write key file %s: %w", filepath.Base(path), err)
	}
	return nil
}

// PubkeyToAddress returns the account address of the public key.
func PubkeyToAddress(pub *secp256k1.PublicKey) common.Address {
	h := hash.Keccak256(pub.SerializeUncompressed()[1:])
	return common.BytesToAddress(h[12:])
}

// Address of the signer.
func (s *KeySigner) Address() common.Address {
	return s.addr
}

// File returns the path of the key file, empty if the key was not persisted.
func (s *KeySigner) File() string {
	return s.file
}

// PrivateKey returns serialized private key.
func (s *KeySigner) PrivateKey() []byte {
	return s.priv.Serialize()
}

// SignDigest signs the digest without prefix and returns r||s||v, v is 27 or 28.
func (s *KeySigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// compact signature is v||r||s
	compact := ecdsa.SignCompact(s.priv, digest[:], false)
	sig := make([]byte, SignatureSize)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig, nil
}
