// 实现了脚本数字的编码与解码，这是比特币脚本语言中数值的表示方式。

package txscript

import (
	"fmt"
)

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31

	// maxScriptNumLen 是作为数字解释的数据的默认最大字节数。
	maxScriptNumLen = 4
)

// ScriptNum 表示脚本中的数值。
//
// 脚本数字以小端字节序存储，最高字节的最高位为符号位，零编码为空字节数组。
// 例如 1 编码为 0x01，-1 编码为 0x81，128 编码为 0x8000（需要额外的符号字节）。
type ScriptNum int64

// checkMinimalDataEncoding 返回传入的字节数组是否符合最小编码要求。
func checkMinimalDataEncoding(v []byte) error {
	if len(v) == 0 {
		return nil
	}

	// Check that the number is encoded with the minimum possible
	// number of bytes.
	//
	// If the most-significant-byte - excluding the sign bit - is zero
	// then we're not minimal.  Note how this test also rejects the
	// negative-zero encoding, [0x80].
	if v[len(v)-1]&0x7f == 0 {
		// One exception: if there's more than one byte and the most
		// significant bit of the second-most-significant-byte is set
		// it would conflict with the sign bit.
		if len(v) == 1 || v[len(v)-2]&0x80 == 0 {
			str := fmt.Sprintf("numeric value encoded as %x is "+
				"not minimally encoded", v)
			return scriptError(ErrMinimalData, str)
		}
	}

	return nil
}

// Bytes 返回数字的最小编码。
func (n ScriptNum) Bytes() []byte {
	// Zero encodes as an empty byte slice.
	if n == 0 {
		return nil
	}

	// 按无符号绝对值编码，math.MinInt64 取反不会溢出。
	isNegative := n < 0
	magnitude := uint64(n)
	if isNegative {
		magnitude = uint64(-(n + 1)) + 1
	}

	// 最多需要 9 个字节：8 个字节的数值加上一个可能的符号字节。
	result := make([]byte, 0, 9)
	for magnitude > 0 {
		result = append(result, byte(magnitude&0xff))
		magnitude >>= 8
	}

	// 最高字节已经占用了最高位时需要追加一个符号字节，
	// 否则直接在最高字节上设置符号位。
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)

	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 返回限制在 int32 有效范围内的数值。
func (n ScriptNum) Int32() int32 {
	if n > maxInt32 {
		return maxInt32
	}

	if n < minInt32 {
		return minInt32
	}

	return int32(n)
}

// MakeScriptNum 将字节数组解释为脚本数字。
//
// scriptNumLen 是允许的最大字节数，超出时返回 ErrNumberTooBig；
// requireMinimal 为 true 时，非最小编码返回 ErrMinimalData。
func MakeScriptNum(v []byte, requireMinimal bool, scriptNumLen int) (ScriptNum, error) {
	if len(v) > scriptNumLen {
		str := fmt.Sprintf("numeric value encoded as %x is %d bytes "+
			"which exceeds the max allowed of %d", v, len(v),
			scriptNumLen)
		return 0, scriptError(ErrNumberTooBig, str)
	}

	if requireMinimal {
		if err := checkMinimalDataEncoding(v); err != nil {
			return 0, err
		}
	}

	// Zero is encoded as an empty byte slice.
	if len(v) == 0 {
		return 0, nil
	}

	// Decode from little endian.
	var result int64
	for i, val := range v {
		result |= int64(val) << uint8(8*i)
	}

	// 最高字节设置了符号位时结果为负数：清除符号位后取反。
	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return ScriptNum(-result), nil
	}

	return ScriptNum(result), nil
}
