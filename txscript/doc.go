// 包含包的文档说明，描述 txscript 包的目的和总体用途

/*
txscript 包实现了比特币交易脚本的编解码与规范性检查。

比特币使用的脚本语言的完整描述可以在 https://en.bitcoin.it/wiki/Script 找到。
该包不执行脚本，只负责脚本的三种表示形式之间的转换：已编译的字节、块序列以及 ASM 文本。

# 脚本表示

Script 是 Chunk 的有序序列，Chunk 要么是 Opcode，要么是 PushData。
Compile 将块序列编译为字节，并遵循 BIP62.3 的最小推送规则；Decompile 执行相反的操作，
遇到长度字段不完整或负载越界的推送时返回 false 而不是错误。
ToASM 与 FromASM 在字节与 ASM 文本之间转换，例如

	OP_DUP OP_HASH160 1234 OP_EQUALVERIFY OP_CHECKSIG

编译为 76a902123488ac。

# 规范性检查

IsPushOnly、ToStack 用于见证与解锁脚本的数据栈；IsCanonicalScriptSignature 检查签名的哈希类型
和严格 DER 编码（BIP66）；IsCanonicalPubKey 检查压缩与非压缩公钥的编码形状；
IsTaptree 检查 Taproot 脚本树的结构。 这些检查对于格式错误的输入只返回 false。

# 错误

该包返回的错误类型为 txscript.Error。
这允许调用者通过检查断言的 txscript.Error 类型的 ErrorCode 字段以编程方式确定特定错误，同时仍然提供带有上下文信息的丰富错误消息。
还提供了一个名为 IsErrorCode 的便捷函数，允许调用者轻松检查特定的错误代码。
*/
package txscript

/**

asm.go					脚本与 ASM 文本之间的转换。
doc.go					包的文档说明。
error.go				定义了脚本编解码过程中可能遇到的错误类型。
opcode.go				操作码常量以及助记符表。
pubkey.go				公钥编码的形状检查。
pushdata.go				数据推送长度前缀的编码与解码。
script.go				脚本的编译与反编译。
scriptnum.go			脚本数字的编码与解码。
signature.go			签名哈希类型与 DER 编码的检查、编码和解码。
stack.go				仅推送脚本的判定以及数据栈转换。
taproot.go				Taproot 脚本树的数据模型与结构校验。

*/
