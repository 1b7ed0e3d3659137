// 包含脚本在字节形式与块序列形式之间编译、反编译的基本函数。

package txscript

import (
	"fmt"
)

// Chunk 是脚本中的一个元素，它只有两种实现：Opcode（单个操作码）和 PushData（要推送的数据）。
type Chunk interface {
	isChunk()
}

// Opcode 是脚本中不携带数据的单个操作码。
type Opcode byte

func (Opcode) isChunk() {}

// PushData 是脚本中要推送到堆栈上的数据。 编译时会选择最小的推送编码。
type PushData []byte

func (PushData) isChunk() {}

// Script 是按执行顺序排列的脚本块序列。
type Script []Chunk

// ScriptSource 是脚本的两种可互换的输入形式：已编译的 RawScript 或块序列 Script。
type ScriptSource interface {
	scriptSource()
}

// RawScript 是已编译的脚本字节。
type RawScript []byte

func (RawScript) scriptSource() {}

func (Script) scriptSource() {}

// AsMinimalOP 返回数据的最小操作码形式（BIP62.3 最小推送规则）。
// 空数据对应 OP_0，单字节 1 到 16 对应 OP_1 到 OP_16，单字节 0x81 对应 OP_1NEGATE。
// 其余数据没有最小操作码形式，返回 false。
func AsMinimalOP(data []byte) (byte, bool) {
	switch {
	case len(data) == 0:
		return OP_0, true
	case len(data) != 1:
		return 0, false
	case data[0] >= 1 && data[0] <= 16:
		return OP_1 - 1 + data[0], true
	case data[0] == 0x81:
		return OP_1NEGATE, true
	}
	return 0, false
}

// Compile 将块序列编译为脚本字节。
//
// 单字节数据若存在最小操作码形式，会被写成对应的 OP_1 到 OP_16 或 OP_1NEGATE，
// 其余数据使用最短的推送前缀。 输出缓冲区按预先计算的长度一次性分配，
// 写入结束时的偏移量必须与之相等，否则返回 ErrEncoding。
func Compile(script Script) ([]byte, error) {
	size := 0
	for i, chunk := range script {
		switch c := chunk.(type) {
		case Opcode:
			size++

		case PushData:
			// adhere to BIP62.3, minimal push policy
			if len(c) == 1 {
				if _, ok := AsMinimalOP(c); ok {
					size++
					continue
				}
			}
			size += PushDataEncodingLength(len(c)) + len(c)

		default:
			str := fmt.Sprintf("chunk %d has unsupported type %T", i, chunk)
			return nil, scriptError(ErrEncoding, str)
		}
	}

	buf := make([]byte, size)
	offset := 0
	for _, chunk := range script {
		switch c := chunk.(type) {
		case Opcode:
			buf[offset] = byte(c)
			offset++

		case PushData:
			if op, ok := AsMinimalOP(c); ok {
				buf[offset] = op
				offset++
				continue
			}
			offset += encodePushDataPrefix(buf, len(c), offset)
			offset += copy(buf[offset:], c)
		}
	}

	if offset != len(buf) {
		str := fmt.Sprintf("compiled %d bytes, expected %d", offset, len(buf))
		return nil, scriptError(ErrEncoding, str)
	}
	return buf, nil
}

// Decompile 将脚本字节解析为块序列。
//
// 位于 (OP_0, OP_PUSHDATA4] 范围内的字节是数据推送，其负载被复制为 PushData；
// 若负载存在最小操作码形式，则改为存储对应的操作码，以保证与 Compile 往返一致。
// 其余字节作为单个操作码存储。
//
// 当长度字段不完整或声明的负载长度超出脚本末尾时返回 false。 这不是异常情况，
// 调用者可以据此把不完整的推送当作普通数据处理。
func Decompile(raw []byte) (Script, bool) {
	script := make(Script, 0, len(raw))

	i := 0
	for i < len(raw) {
		op := raw[i]

		// Opcodes without data.
		if op == OP_0 || op > OP_PUSHDATA4 {
			script = append(script, Opcode(op))
			i++
			continue
		}

		n, size, ok := decodePushDataPrefix(raw, i)
		if !ok {
			return nil, false
		}
		i += size

		// Attempt to read past the end of the script?
		if n > uint64(len(raw)-i) {
			return nil, false
		}

		data := make([]byte, int(n))
		copy(data, raw[i:])
		i += int(n)

		if minimal, ok := AsMinimalOP(data); ok {
			script = append(script, Opcode(minimal))
		} else {
			script = append(script, PushData(data))
		}
	}

	return script, true
}

// CompileSource 将任一形式的脚本转换为字节。 已编译的 RawScript 原样返回。
func CompileSource(src ScriptSource) ([]byte, error) {
	switch s := src.(type) {
	case RawScript:
		return s, nil
	case Script:
		return Compile(s)
	}
	return nil, scriptError(ErrEncoding, fmt.Sprintf("unsupported script source %T", src))
}

// DecompileSource 将任一形式的脚本转换为块序列。 Script 原样返回。
func DecompileSource(src ScriptSource) (Script, bool) {
	switch s := src.(type) {
	case Script:
		return s, true
	case RawScript:
		return Decompile(s)
	}
	return nil, false
}
