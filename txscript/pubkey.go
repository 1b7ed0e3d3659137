// 公钥字节编码的形状检查：压缩与非压缩的 secp256k1 点。

package txscript

import (
	"bytes"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// pubKeyCompressedLen 是压缩公钥的长度：1 字节前缀加 32 字节 x 坐标。
	pubKeyCompressedLen = 33

	// pubKeyUncompressedLen 是非压缩公钥的长度：1 字节前缀加 x、y 两个坐标。
	pubKeyUncompressedLen = 65

	pubKeyFormatCompressedEven = 0x02
	pubKeyFormatCompressedOdd  = 0x03
	pubKeyFormatUncompressed   = 0x04

	coordinateLen = 32
)

var (
	zero32 = make([]byte, coordinateLen)

	// fieldPrime 是 secp256k1 有限域素数 p 的 32 字节大端编码。
	fieldPrime = secp256k1.S256().Params().P.FillBytes(make([]byte, coordinateLen))
)

// isFieldElement 返回 32 字节坐标是否非零且小于 p。
func isFieldElement(c []byte) bool {
	return !bytes.Equal(c, zero32) && bytes.Compare(c, fieldPrime) < 0
}

// IsPoint 返回字节是否具有合法的公钥编码形状。
//
// 压缩形式为 0x02 或 0x03 加 32 字节 x 坐标，非压缩形式为 0x04 加 x、y 坐标，
// 坐标必须非零且小于 secp256k1 的域素数。 这里不检查点是否位于曲线上。
func IsPoint(p []byte) bool {
	if len(p) < pubKeyCompressedLen {
		return false
	}

	format := p[0]
	if !isFieldElement(p[1:pubKeyCompressedLen]) {
		return false
	}
	if (format == pubKeyFormatCompressedEven || format == pubKeyFormatCompressedOdd) &&
		len(p) == pubKeyCompressedLen {

		return true
	}

	if len(p) < pubKeyUncompressedLen ||
		!isFieldElement(p[pubKeyCompressedLen:pubKeyUncompressedLen]) {

		return false
	}
	return format == pubKeyFormatUncompressed && len(p) == pubKeyUncompressedLen
}

// IsCanonicalPubKey 返回公钥是否采用规范的压缩或非压缩编码。
func IsCanonicalPubKey(p []byte) bool {
	return IsPoint(p)
}
