// 定义了脚本编解码过程中可能遇到的错误类型。

package txscript

import (
	"fmt"
)

// ErrorCode 标识一种脚本错误。
type ErrorCode int

// 这些常量用于标识特定的错误。
const (
	// ErrInternal 当内部一致性检查失败时返回。
	// 它表示本包自身存在缺陷，而不是输入数据有误。
	ErrInternal ErrorCode = iota

	// ErrEncoding 当编译后写入的字节数与预先计算的脚本长度不一致时返回。
	ErrEncoding

	// ErrFormat 当 ASM 字符串中的令牌既不是已知助记符也不是合法的十六进制数据时返回。
	ErrFormat

	// ErrConversion 当待转换为 ASM 的原始脚本无法反编译时返回。
	ErrConversion

	// ErrMalformedPush 当数据推送操作码的长度字段或负载超出脚本末尾时返回。
	ErrMalformedPush

	// ErrNotPushOnly 当要求脚本只包含数据推送但出现了其他操作码时返回。
	ErrNotPushOnly

	// ErrNumberTooBig 当脚本数字超出允许的最大字节长度时返回。
	ErrNumberTooBig

	// ErrMinimalData 当脚本数字没有使用最小编码时返回。
	ErrMinimalData

	// ErrSigInvalidHashType 当签名的哈希类型不是已定义的类型时返回。
	ErrSigInvalidHashType

	// ErrSigDER 当签名不符合严格 DER 编码时返回。
	ErrSigDER

	// numErrorCodes 是最大错误代码数。 它不在公共错误代码中使用。 它仅用于测试。
	numErrorCodes
)

// errorCodeStrings 是错误代码到其名称的映射，用于更友好的打印。
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:           "ErrInternal",
	ErrEncoding:           "ErrEncoding",
	ErrFormat:             "ErrFormat",
	ErrConversion:         "ErrConversion",
	ErrMalformedPush:      "ErrMalformedPush",
	ErrNotPushOnly:        "ErrNotPushOnly",
	ErrNumberTooBig:       "ErrNumberTooBig",
	ErrMinimalData:        "ErrMinimalData",
	ErrSigInvalidHashType: "ErrSigInvalidHashType",
	ErrSigDER:             "ErrSigDER",
}

// String 以人类可读的形式返回 ErrorCode。
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error 标识脚本相关的错误。
// 调用者可以通过断言错误类型并检查 ErrorCode 字段来以编程方式区分错误，
// Description 字段则提供带有上下文的可读描述。
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error 满足错误接口并打印人类可读的错误。
func (e Error) Error() string {
	return e.Description
}

// scriptError 根据给定的错误代码和描述创建一个 Error。
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode 返回提供的错误是否是具有给定错误代码的脚本错误。
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
