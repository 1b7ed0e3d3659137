package ecc

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
)

// 保证 BtcecEngine 实现 Engine。
var _ Engine = (*BtcecEngine)(nil)

// groupOrder 是 secp256k1 群的阶 n。
var groupOrder = []byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
}

func xOnly(seed byte) []byte {
	_, pubKey := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	return schnorr.SerializePubKey(pubKey)
}

func TestIsXOnlyPoint(t *testing.T) {
	t.Parallel()

	engine := NewBtcecEngine()
	for seed := byte(1); seed <= 5; seed++ {
		require.True(t, engine.IsXOnlyPoint(xOnly(seed)))
	}

	require.False(t, engine.IsXOnlyPoint(nil))
	require.False(t, engine.IsXOnlyPoint(make([]byte, 32)))
	require.False(t, engine.IsXOnlyPoint(append([]byte{0x02}, xOnly(1)...)))

	// x = 5 不在曲线上。
	notOnCurve := make([]byte, 32)
	notOnCurve[31] = 0x05
	require.False(t, engine.IsXOnlyPoint(notOnCurve))
}

// TestXOnlyPointAddTweakMatchesTaprootOutputKey 确保加调整的结果与 taproot 输出密钥的计算一致。
func TestXOnlyPointAddTweakMatchesTaprootOutputKey(t *testing.T) {
	t.Parallel()

	engine := NewBtcecEngine()
	roots := [][]byte{nil, bytes.Repeat([]byte{0xab}, 32)}

	for seed := byte(1); seed <= 4; seed++ {
		internal := xOnly(seed)
		internalKey, err := schnorr.ParsePubKey(internal)
		require.NoError(t, err)

		for _, root := range roots {
			tweak := chainhash.TaggedHash(chainhash.TagTapTweak, internal, root)
			result, ok := engine.XOnlyPointAddTweak(internal, tweak[:])
			require.True(t, ok)

			outputKey := txscript.ComputeTaprootOutputKey(internalKey, root)
			compressed := outputKey.SerializeCompressed()

			require.Equal(t, compressed[1:], result.XOnlyPubKey)
			require.Equal(t, compressed[0]-0x02, result.Parity)
		}
	}
}

func TestXOnlyPointAddTweakZero(t *testing.T) {
	t.Parallel()

	engine := NewBtcecEngine()
	p := xOnly(7)

	result, ok := engine.XOnlyPointAddTweak(p, make([]byte, 32))
	require.True(t, ok)
	require.Equal(t, p, result.XOnlyPubKey)
	require.Equal(t, byte(0), result.Parity)
}

func TestXOnlyPointAddTweakInvalid(t *testing.T) {
	t.Parallel()

	engine := NewBtcecEngine()
	p := xOnly(1)

	_, ok := engine.XOnlyPointAddTweak(p, groupOrder)
	require.False(t, ok, "tweak equal to the group order")

	_, ok = engine.XOnlyPointAddTweak(p, []byte{0x01})
	require.False(t, ok, "short tweak")

	_, ok = engine.XOnlyPointAddTweak(make([]byte, 32), make([]byte, 32))
	require.False(t, ok, "invalid point")

	// G 的 y 坐标为偶数，G + (n-1)*G 是无穷远点。
	one := make([]byte, 32)
	one[31] = 0x01
	_, g := btcec.PrivKeyFromBytes(one)
	nMinusOne := append([]byte(nil), groupOrder...)
	nMinusOne[31]--
	_, ok = engine.XOnlyPointAddTweak(schnorr.SerializePubKey(g), nMinusOne)
	require.False(t, ok, "point at infinity")
}
