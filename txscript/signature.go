// 脚本签名的规范性检查：哈希类型与严格 DER 编码（BIP66）。

package txscript

import (
	"fmt"
)

// SigHashType 表示签名末尾的哈希类型标志。
type SigHashType uint32

// 哈希类型位。
const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashForkID       SigHashType = 0x40
	SigHashAnyOneCanPay SigHashType = 0x80

	// sigHashModifierMask 覆盖 SigHashForkID 与 SigHashAnyOneCanPay 两个修饰位。
	sigHashModifierMask = 0xc0
)

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02

	// minSigLen 是 R 与 S 各占 1 字节时 DER 签名的长度。
	minSigLen = 8

	// maxSigLen 是 R 与 S 各占 33 字节时 DER 签名的长度。
	maxSigLen = 72

	// DER 签名中固定字段的偏移量：
	// 0x30 <总长度> 0x02 <R 长度> <R> 0x02 <S 长度> <S>
	sequenceOffset = 0
	dataLenOffset  = 1
	rTypeOffset    = 2
	rLenOffset     = 3
	rOffset        = 4

	// bip66IntegerMaxLen 是 R 或 S 的最大字节数：32 字节数值加上可能的符号填充字节。
	bip66IntegerMaxLen = 33
)

// IsDefinedHashType 返回哈希类型去掉两个修饰位后是否为 SigHashAll、SigHashNone 或 SigHashSingle。
func IsDefinedHashType(hashType byte) bool {
	base := SigHashType(hashType) &^ sigHashModifierMask
	return base >= SigHashAll && base <= SigHashSingle
}

// CheckDERSignature 检查签名（不含哈希类型字节）是否符合严格 DER 编码。
//
// 格式为 0x30 <总长度> 0x02 <R 长度> <R> 0x02 <S 长度> <S>：总长度必须精确覆盖其余数据，
// R 与 S 必须是非空、非负的大端整数，并且只有在最高位已被占用时才允许一个前导 0x00。
// 不符合时返回 ErrSigDER。
func CheckDERSignature(sig []byte) error {
	sigLen := len(sig)
	if sigLen < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen,
			minSigLen)
		return scriptError(ErrSigDER, str)
	}
	if sigLen > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen,
			maxSigLen)
		return scriptError(ErrSigDER, str)
	}

	if sig[sequenceOffset] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x",
			sig[sequenceOffset])
		return scriptError(ErrSigDER, str)
	}
	if int(sig[dataLenOffset]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sig[dataLenOffset], sigLen-2)
		return scriptError(ErrSigDER, str)
	}

	// S 的类型与长度字段必须位于签名之内。
	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		return scriptError(ErrSigDER, "malformed signature: S type indicator missing")
	}
	if sLenOffset >= sigLen {
		return scriptError(ErrSigDER, "malformed signature: S length missing")
	}

	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		return scriptError(ErrSigDER, "malformed signature: invalid S length")
	}

	if err := checkDERInteger("R", sig[rTypeOffset], sig[rOffset:rOffset+rLen]); err != nil {
		return err
	}
	return checkDERInteger("S", sig[sTypeOffset], sig[sOffset:sOffset+sLen])
}

// checkDERInteger 检查 DER 签名中的单个整数字段。
func checkDERInteger(name string, typeID byte, v []byte) error {
	if typeID != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: %s integer marker: %#x != %#x",
			name, typeID, asn1IntegerID)
		return scriptError(ErrSigDER, str)
	}
	if len(v) == 0 {
		str := fmt.Sprintf("malformed signature: %s length is zero", name)
		return scriptError(ErrSigDER, str)
	}
	if v[0]&0x80 != 0 {
		str := fmt.Sprintf("malformed signature: %s is negative", name)
		return scriptError(ErrSigDER, str)
	}
	if len(v) > 1 && v[0] == 0x00 && v[1]&0x80 == 0 {
		str := fmt.Sprintf("malformed signature: %s value has too much padding", name)
		return scriptError(ErrSigDER, str)
	}
	return nil
}

// IsCanonicalScriptSignature 返回脚本签名（DER 签名后跟一个哈希类型字节）是否规范。
// 任何格式问题都只会得到 false。
func IsCanonicalScriptSignature(sig []byte) bool {
	if len(sig) == 0 {
		return false
	}
	if !IsDefinedHashType(sig[len(sig)-1]) {
		return false
	}
	return CheckDERSignature(sig[:len(sig)-1]) == nil
}

// EncodeDERSignature 将 R 与 S 的 DER 整数编码组合为 DER 签名。
// R 与 S 必须已经是最小的非负大端编码，否则返回 ErrSigDER。
func EncodeDERSignature(r, s []byte) ([]byte, error) {
	for _, v := range []struct {
		name string
		b    []byte
	}{{"R", r}, {"S", s}} {
		if len(v.b) > bip66IntegerMaxLen {
			str := fmt.Sprintf("%s length is too long: %d", v.name, len(v.b))
			return nil, scriptError(ErrSigDER, str)
		}
		if err := checkDERInteger(v.name, asn1IntegerID, v.b); err != nil {
			return nil, err
		}
	}

	sig := make([]byte, 0, 6+len(r)+len(s))
	sig = append(sig, asn1SequenceID, byte(4+len(r)+len(s)))
	sig = append(sig, asn1IntegerID, byte(len(r)))
	sig = append(sig, r...)
	sig = append(sig, asn1IntegerID, byte(len(s)))
	sig = append(sig, s...)
	return sig, nil
}

// DecodeDERSignature 校验 DER 签名并返回其中 R 与 S 的整数编码。
// 返回的切片是签名的副本。
func DecodeDERSignature(sig []byte) (r, s []byte, err error) {
	if err := CheckDERSignature(sig); err != nil {
		return nil, nil, err
	}

	rLen := int(sig[rLenOffset])
	sOffset := rOffset + rLen + 2
	r = append([]byte(nil), sig[rOffset:rOffset+rLen]...)
	s = append([]byte(nil), sig[sOffset:]...)
	return r, s, nil
}

// ScriptSignature 是脚本签名的解码形式：64 字节的 r||s 紧凑签名与哈希类型。
type ScriptSignature struct {
	Signature [64]byte
	HashType  SigHashType
}

// toDERInteger 将 32 字节无符号大端数值转换为最小的 DER 整数编码。
func toDERInteger(x []byte) []byte {
	i := 0
	for i < len(x) && x[i] == 0 {
		i++
	}
	if i == len(x) {
		return []byte{0}
	}
	x = x[i:]
	if x[0]&0x80 != 0 {
		return append([]byte{0}, x...)
	}
	return append([]byte(nil), x...)
}

// fromDERInteger 将 DER 整数编码转换回 32 字节无符号大端数值。
func fromDERInteger(name string, x []byte, out []byte) error {
	if x[0] == 0 {
		x = x[1:]
	}
	if len(x) > len(out) {
		str := fmt.Sprintf("%s value is too large: %d bytes", name, len(x))
		return scriptError(ErrSigDER, str)
	}
	copy(out[len(out)-len(x):], x)
	return nil
}

// EncodeScriptSignature 将 64 字节紧凑签名和哈希类型编码为脚本签名。
// 未定义的哈希类型返回 ErrSigInvalidHashType。
func EncodeScriptSignature(sig [64]byte, hashType SigHashType) ([]byte, error) {
	if hashType > 0xff || !IsDefinedHashType(byte(hashType)) {
		str := fmt.Sprintf("invalid hash type 0x%x", uint32(hashType))
		return nil, scriptError(ErrSigInvalidHashType, str)
	}

	der, err := EncodeDERSignature(toDERInteger(sig[:32]), toDERInteger(sig[32:]))
	if err != nil {
		return nil, err
	}
	return append(der, byte(hashType)), nil
}

// DecodeScriptSignature 将脚本签名解码为紧凑签名和哈希类型。
func DecodeScriptSignature(b []byte) (*ScriptSignature, error) {
	if len(b) == 0 {
		return nil, scriptError(ErrSigDER, "malformed signature: empty")
	}

	hashType := b[len(b)-1]
	if !IsDefinedHashType(hashType) {
		str := fmt.Sprintf("invalid hash type 0x%x", hashType)
		return nil, scriptError(ErrSigInvalidHashType, str)
	}

	r, s, err := DecodeDERSignature(b[:len(b)-1])
	if err != nil {
		return nil, err
	}

	decoded := &ScriptSignature{HashType: SigHashType(hashType)}
	if err := fromDERInteger("R", r, decoded.Signature[:32]); err != nil {
		return nil, err
	}
	if err := fromDERInteger("S", s, decoded.Signature[32:]); err != nil {
		return nil, err
	}
	return decoded, nil
}
