// 脚本与人类可读的汇编（ASM）文本之间的转换。

package txscript

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// rawOpcodePrefix 是没有助记符的操作码在 ASM 中的前缀，例如 OP_DATA_2 写作 0x02。
// 数据令牌从不带 0x 前缀，因此两者不会混淆。
const rawOpcodePrefix = "0x"

// asmToken 返回单个块的 ASM 令牌。
func asmToken(chunk Chunk) (string, error) {
	var op byte
	switch c := chunk.(type) {
	case PushData:
		minimal, ok := AsMinimalOP(c)
		if !ok {
			return hex.EncodeToString(c), nil
		}
		op = minimal

	case Opcode:
		op = byte(c)

	default:
		return "", scriptError(ErrConversion, fmt.Sprintf("unsupported chunk type %T", chunk))
	}

	if name, ok := OpcodeName(op); ok {
		return name, nil
	}
	return fmt.Sprintf("%s%02x", rawOpcodePrefix, op), nil
}

// ToASM 返回脚本的 ASM 表示形式，令牌之间以单个空格分隔。
//
// 原始字节会先被反编译，反编译失败时返回 ErrConversion。 具有最小操作码形式的数据
// 以该操作码的助记符表示，其余数据以小写十六进制表示。
func ToASM(src ScriptSource) (string, error) {
	script, ok := DecompileSource(src)
	if !ok {
		return "", scriptError(ErrConversion, "could not convert invalid chunks to ASM")
	}

	tokens := make([]string, 0, len(script))
	for _, chunk := range script {
		token, err := asmToken(chunk)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, token)
	}
	return strings.Join(tokens, " "), nil
}

// parseASMToken 将单个 ASM 令牌解析为块。
func parseASMToken(token string) (Chunk, error) {
	// opcode?
	if op, ok := LookupOpcode(token); ok {
		return Opcode(op), nil
	}

	if strings.HasPrefix(token, rawOpcodePrefix) && len(token) == len(rawOpcodePrefix)+2 {
		op, err := strconv.ParseUint(token[len(rawOpcodePrefix):], 16, 8)
		if err == nil {
			return Opcode(byte(op)), nil
		}
	}

	// data!
	if len(token)%2 != 0 {
		str := fmt.Sprintf("token %q is not an even-length hex string", token)
		return nil, scriptError(ErrFormat, str)
	}
	data, err := hex.DecodeString(token)
	if err != nil {
		str := fmt.Sprintf("token %q is neither an opcode nor hex data: %v", token, err)
		return nil, scriptError(ErrFormat, str)
	}
	return PushData(data), nil
}

// ParseASM 将 ASM 字符串解析为块序列，不进行编译。
// 令牌按空白分隔；已知助记符解析为操作码，否则必须是偶数长度的十六进制数据，
// 否则返回 ErrFormat。
func ParseASM(asm string) (Script, error) {
	fields := strings.Fields(asm)
	script := make(Script, 0, len(fields))
	for _, token := range fields {
		chunk, err := parseASMToken(token)
		if err != nil {
			return nil, err
		}
		script = append(script, chunk)
	}
	return script, nil
}

// FromASM 将 ASM 字符串编译为脚本字节。
func FromASM(asm string) ([]byte, error) {
	script, err := ParseASM(asm)
	if err != nil {
		return nil, err
	}
	return Compile(script)
}

// String 返回操作码的助记符，没有助记符时返回 0x 前缀的十六进制值。
func (o Opcode) String() string {
	token, _ := asmToken(o)
	return token
}

// String 返回脚本的 ASM 表示形式。
func (s Script) String() string {
	asm, err := ToASM(s)
	if err != nil {
		return "[error]"
	}
	return asm
}
