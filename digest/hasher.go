// 哈希后端接口与基于后端的摘要计算。

package digest

import (
	"crypto/sha1"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// Backend 是计算基本哈希函数的能力。
type Backend interface {
	SHA1(b []byte) []byte
	SHA256(b []byte) []byte
	RIPEMD160(b []byte) []byte
}

// defaultBackend 使用 crypto/sha1、chainhash 和 x/crypto/ripemd160。
type defaultBackend struct{}

// DefaultBackend 是默认的哈希后端。
var DefaultBackend Backend = defaultBackend{}

func (defaultBackend) SHA1(b []byte) []byte {
	sum := sha1.Sum(b)
	return sum[:]
}

func (defaultBackend) SHA256(b []byte) []byte {
	return chainhash.HashB(b)
}

func (defaultBackend) RIPEMD160(b []byte) []byte {
	hasher := ripemd160.New()
	// Write never returns an error.
	_, _ = hasher.Write(b)
	return hasher.Sum(nil)
}

// Hasher 基于哈希后端计算带标签的摘要。
type Hasher struct {
	backend Backend
}

// NewHasher 返回使用指定后端的 Hasher，backend 为 nil 时使用 DefaultBackend。
func NewHasher(backend Backend) *Hasher {
	if backend == nil {
		backend = DefaultBackend
	}
	return &Hasher{backend: backend}
}

// Backend 返回 Hasher 使用的后端。
func (h *Hasher) Backend() Backend {
	return h.backend
}

// Ripemd160 计算 ripemd160(b)。
func (h *Hasher) Ripemd160(b []byte) (*Digest, error) {
	return New(AlgoRipemd160, h.backend.RIPEMD160(b), b)
}

// Sha1 计算 sha1(b)。
func (h *Hasher) Sha1(b []byte) (*Digest, error) {
	return New(AlgoSha1, h.backend.SHA1(b), b)
}

// Sha256 计算 sha256(b)。
func (h *Hasher) Sha256(b []byte) (*Digest, error) {
	return New(AlgoSha256, h.backend.SHA256(b), b)
}

// Hash160 计算 ripemd160(sha256(b))。 每一步的输出都会检查长度。
func (h *Hasher) Hash160(b []byte) (*Digest, error) {
	sha, err := h.Sha256(b)
	if err != nil {
		return nil, err
	}
	ripe, err := h.Ripemd160(sha.Bytes())
	if err != nil {
		return nil, err
	}
	return New(AlgoHash160, ripe.Bytes(), b)
}

// Hash256 计算 sha256(sha256(b))。 每一步的输出都会检查长度。
func (h *Hasher) Hash256(b []byte) (*Digest, error) {
	sha, err := h.Sha256(b)
	if err != nil {
		return nil, err
	}
	outer, err := h.Sha256(sha.Bytes())
	if err != nil {
		return nil, err
	}
	return New(AlgoHash256, outer.Bytes(), b)
}

// Sum 按算法计算摘要。
func (h *Hasher) Sum(algorithm Algorithm, b []byte) (*Digest, error) {
	switch algorithm {
	case AlgoRipemd160:
		return h.Ripemd160(b)
	case AlgoSha1:
		return h.Sha1(b)
	case AlgoSha256:
		return h.Sha256(b)
	case AlgoHash160:
		return h.Hash160(b)
	case AlgoHash256:
		return h.Hash256(b)
	}
	return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", string(algorithm))
}

var defaultHasher = NewHasher(DefaultBackend)

// Ripemd160 使用默认后端计算 ripemd160(b)。
func Ripemd160(b []byte) (*Digest, error) { return defaultHasher.Ripemd160(b) }

// Sha1 使用默认后端计算 sha1(b)。
func Sha1(b []byte) (*Digest, error) { return defaultHasher.Sha1(b) }

// Sha256 使用默认后端计算 sha256(b)。
func Sha256(b []byte) (*Digest, error) { return defaultHasher.Sha256(b) }

// Hash160 使用默认后端计算 ripemd160(sha256(b))。
func Hash160(b []byte) (*Digest, error) { return defaultHasher.Hash160(b) }

// Hash256 使用默认后端计算 sha256(sha256(b))。
func Hash256(b []byte) (*Digest, error) { return defaultHasher.Hash256(b) }
