// 摘要包装：带算法标签与固定长度校验的哈希结果。

package digest

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Algorithm 标识摘要使用的哈希算法。
type Algorithm string

const (
	AlgoRipemd160 Algorithm = "ripemd160"
	AlgoSha1      Algorithm = "sha1"
	AlgoSha256    Algorithm = "sha256"
	AlgoHash160   Algorithm = "hash160" // ripemd160(sha256(x))
	AlgoHash256   Algorithm = "hash256" // sha256(sha256(x))
)

var (
	// ErrBadDigestLength 当哈希后端输出的长度与算法的固定长度不一致时返回。
	ErrBadDigestLength = errors.New("digest length mismatch")

	// ErrUnknownAlgorithm 当算法名称无法识别时返回。
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")
)

// algorithmSizes 是每种算法的固定输出长度。
var algorithmSizes = map[Algorithm]int{
	AlgoRipemd160: 20,
	AlgoSha1:      20,
	AlgoSha256:    32,
	AlgoHash160:   20,
	AlgoHash256:   32,
}

// Algorithms 返回全部支持的算法。
func Algorithms() []Algorithm {
	return []Algorithm{AlgoRipemd160, AlgoSha1, AlgoSha256, AlgoHash160, AlgoHash256}
}

// Size 返回算法的固定输出长度，未知算法返回 0。
func (a Algorithm) Size() int {
	return algorithmSizes[a]
}

// ParseAlgorithm 按名称解析算法。
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(name)
	if _, ok := algorithmSizes[a]; !ok {
		return "", errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
	return a, nil
}

// Digest 是哈希后端的输出，附带算法标签和原像。
type Digest struct {
	sum       []byte
	algorithm Algorithm
	preimage  []byte
}

// New 创建摘要。 sum 的长度必须等于算法的固定长度，否则返回 ErrBadDigestLength。
// preimage 仅被引用，用于调试与串联计算。
func New(algorithm Algorithm, sum, preimage []byte) (*Digest, error) {
	size, ok := algorithmSizes[algorithm]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", string(algorithm))
	}
	if len(sum) != size {
		return nil, errors.Wrapf(ErrBadDigestLength, "%s: got %d bytes, want %d",
			algorithm, len(sum), size)
	}

	return &Digest{
		sum:       append([]byte(nil), sum...),
		algorithm: algorithm,
		preimage:  preimage,
	}, nil
}

// Bytes 返回摘要字节。
func (d *Digest) Bytes() []byte {
	return d.sum
}

// Algorithm 返回摘要的算法。
func (d *Digest) Algorithm() Algorithm {
	return d.algorithm
}

// Preimage 返回计算摘要时的输入。
func (d *Digest) Preimage() []byte {
	return d.preimage
}

// String 返回摘要的十六进制编码。
func (d *Digest) String() string {
	return hex.EncodeToString(d.sum)
}
