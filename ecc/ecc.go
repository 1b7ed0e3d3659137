// 椭圆曲线能力接口以及基于 btcec 的默认实现。

package ecc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/pkg/errors"
)

// XOnlyPubKeyLen 是 x-only 公钥的长度。
const XOnlyPubKeyLen = 32

// ErrNotXOnlyPoint 当字节不是曲线上点的 x-only 编码时返回。
var ErrNotXOnlyPoint = errors.New("not an x-only point")

// XOnlyPointAddTweakResult 是 x-only 点加调整后的结果。
type XOnlyPointAddTweakResult struct {
	// Parity 是结果点 y 坐标的奇偶性，0 为偶数，1 为奇数。
	Parity byte

	// XOnlyPubKey 是结果点的 32 字节 x 坐标。
	XOnlyPubKey []byte
}

// Engine 是脚本层所需的椭圆曲线能力。 调用者可以提供任意实现。
type Engine interface {
	// IsXOnlyPoint 返回字节是否为曲线上点的 x-only 编码。
	IsXOnlyPoint(p []byte) bool

	// XOnlyPointAddTweak 计算 P + tweak*G，其中 P 是 x-only 点对应的偶数 y 点。
	// 点或调整值不合法，或者结果为无穷远点时返回 false。
	XOnlyPointAddTweak(p, tweak []byte) (*XOnlyPointAddTweakResult, bool)
}

// BtcecEngine 是基于 btcec/v2 的 Engine。
type BtcecEngine struct{}

// NewBtcecEngine 返回默认的 Engine。
func NewBtcecEngine() *BtcecEngine {
	return &BtcecEngine{}
}

// ParseXOnlyPoint 将 x-only 编码解析为偶数 y 的公钥。
func ParseXOnlyPoint(p []byte) (*btcec.PublicKey, error) {
	if len(p) != XOnlyPubKeyLen {
		return nil, errors.Wrapf(ErrNotXOnlyPoint, "length %d", len(p))
	}
	pubKey, err := schnorr.ParsePubKey(p)
	if err != nil {
		return nil, errors.Wrap(ErrNotXOnlyPoint, err.Error())
	}
	return pubKey, nil
}

// IsXOnlyPoint 实现 Engine。
func (e *BtcecEngine) IsXOnlyPoint(p []byte) bool {
	_, err := ParseXOnlyPoint(p)
	return err == nil
}

// XOnlyPointAddTweak 实现 Engine。
func (e *BtcecEngine) XOnlyPointAddTweak(p, tweak []byte) (*XOnlyPointAddTweakResult, bool) {
	internalKey, err := ParseXOnlyPoint(p)
	if err != nil {
		return nil, false
	}

	// The tweak must be a scalar strictly below the group order.
	if len(tweak) != 32 {
		return nil, false
	}
	var tweakScalar btcec.ModNScalar
	if overflow := tweakScalar.SetByteSlice(tweak); overflow {
		return nil, false
	}

	var internalPoint btcec.JacobianPoint
	internalKey.AsJacobian(&internalPoint)

	// result = internalPoint + (tweak*G)
	var tPoint, result btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&tweakScalar, &tPoint)
	btcec.AddNonConst(&internalPoint, &tPoint, &result)

	if (result.X.IsZero() && result.Y.IsZero()) || result.Z.IsZero() {
		return nil, false
	}
	result.ToAffine()

	parity := byte(0)
	if result.Y.IsOdd() {
		parity = 1
	}
	x := result.X.Bytes()
	return &XOnlyPointAddTweakResult{
		Parity:      parity,
		XOnlyPubKey: x[:],
	}, true
}
