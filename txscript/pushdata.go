// 数据推送操作码长度前缀的编码与解码。

package txscript

import (
	"encoding/binary"
)

// PushDataEncodingLength 返回推送 n 字节数据时长度前缀（含操作码）所占的字节数。
func PushDataEncodingLength(n int) int {
	switch {
	case n < OP_PUSHDATA1:
		return 1
	case n <= 0xff:
		return 2
	case n <= 0xffff:
		return 3
	default:
		return 5
	}
}

// encodePushDataPrefix 将推送 n 字节数据所需的操作码和长度字段写入 buf 的 offset 处，
// 并返回写入的字节数。 调用者必须保证 buf 有足够的空间。
func encodePushDataPrefix(buf []byte, n int, offset int) int {
	size := PushDataEncodingLength(n)
	switch size {
	case 1:
		buf[offset] = byte(n)
	case 2:
		buf[offset] = OP_PUSHDATA1
		buf[offset+1] = byte(n)
	case 3:
		buf[offset] = OP_PUSHDATA2
		binary.LittleEndian.PutUint16(buf[offset+1:], uint16(n))
	default:
		buf[offset] = OP_PUSHDATA4
		binary.LittleEndian.PutUint32(buf[offset+1:], uint32(n))
	}
	return size
}

// decodePushDataPrefix 解析 raw 中 offset 处数据推送操作码的长度前缀。
// 它返回声明的数据长度以及前缀本身占用的字节数。
// 当长度字段超出脚本末尾时返回 false，而不会越界读取。
//
// 调用者必须保证 raw[offset] 位于 (OP_0, OP_PUSHDATA4] 范围内。
func decodePushDataPrefix(raw []byte, offset int) (uint64, int, bool) {
	op := &opcodeArray[raw[offset]]

	// OP_DATA_1 到 OP_DATA_75：长度已包含在操作码中。
	if op.length > 0 {
		return uint64(op.length - 1), 1, true
	}

	// OP_PUSHDATA1/2/4：-length 是其后小端长度字段的字节数。
	width := -op.length
	if len(raw)-offset < 1+width {
		return 0, 0, false
	}
	field := raw[offset+1 : offset+1+width]

	var n uint64
	switch width {
	case 1:
		n = uint64(field[0])
	case 2:
		n = uint64(binary.LittleEndian.Uint16(field))
	default:
		n = uint64(binary.LittleEndian.Uint32(field))
	}
	return n, 1 + width, true
}
