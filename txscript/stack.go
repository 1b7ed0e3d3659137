// 仅推送脚本的判定以及脚本到数据栈的转换。

package txscript

import (
	"bytes"
	"fmt"
)

// isPushOnlyChunk 返回单个块是否为数据推送：数据本身，或 OP_0、OP_1NEGATE、OP_1 到 OP_16。
func isPushOnlyChunk(chunk Chunk) bool {
	switch c := chunk.(type) {
	case PushData:
		return true
	case Opcode:
		return IsMinimalIntOpcode(byte(c))
	}
	return false
}

// IsPushOnly 返回脚本是否只包含数据推送。
// OP_RESERVED 虽然在数值上位于小整数操作码之间，但它不是数据推送。
func IsPushOnly(script Script) bool {
	for _, chunk := range script {
		if !isPushOnlyChunk(chunk) {
			return false
		}
	}
	return true
}

// CountNonPushOnlyOPs 返回脚本中不是数据推送的块的数量。
func CountNonPushOnlyOPs(script Script) int {
	n := 0
	for _, chunk := range script {
		if !isPushOnlyChunk(chunk) {
			n++
		}
	}
	return n
}

// ToStack 将仅推送脚本转换为数据栈。
//
// OP_0 转换为空字节数组，OP_1NEGATE 与 OP_1 到 OP_16 转换为对应数值的最小脚本数字编码，
// 数据原样保留。 原始字节无法反编译时返回 ErrMalformedPush，
// 脚本包含非推送操作码时返回 ErrNotPushOnly。
func ToStack(src ScriptSource) ([][]byte, error) {
	script, ok := DecompileSource(src)
	if !ok {
		return nil, scriptError(ErrMalformedPush, "script contains a malformed data push")
	}

	if n := CountNonPushOnlyOPs(script); n != 0 {
		str := fmt.Sprintf("script contains %d non push-only opcodes", n)
		return nil, scriptError(ErrNotPushOnly, str)
	}

	stack := make([][]byte, 0, len(script))
	for _, chunk := range script {
		switch c := chunk.(type) {
		case PushData:
			stack = append(stack, c)

		case Opcode:
			if byte(c) == OP_0 {
				stack = append(stack, []byte{})
				continue
			}
			stack = append(stack, ScriptNum(AsSmallInt(byte(c))).Bytes())
		}
	}
	return stack, nil
}

// StacksEqual 返回两个数据栈是否逐项相等。
func StacksEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
