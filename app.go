package btcscript

import (
	"context"
	"fmt"

	"github.com/qinglongcn/btcscript/digest"
	"github.com/qinglongcn/btcscript/ecc"
	"github.com/qinglongcn/btcscript/txscript"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
)

// BS 提供了编解码、校验比特币脚本所需的各种函数
type BS struct {
	ctx    context.Context // 全局上下文
	opt    *Options        // 选项配置
	app    *fx.App         // 依赖注入容器
	hasher *digest.Hasher  // 哈希服务
	engine ecc.Engine      // 椭圆曲线服务
}

// Open 返回一个新的脚本实例
func Open(opt *Options) (*BS, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	// 1. 检查并设置选项
	if err := opt.CheckAndSetOptions(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	bs := &BS{
		ctx: ctx,
		opt: opt,
	}

	// fx 配置项
	opts := []fx.Option{
		fx.NopLogger,
		bs.globalInit(),
		fx.Provide(
			NewHasher, // 哈希服务
			NewEngine, // 椭圆曲线服务
		),
		fx.Invoke(
			InitLog, // 初始化日志
		),
	}
	opts = append(opts, fx.Populate(
		&bs.hasher,
		&bs.engine,
	))
	bs.app = fx.New(opts...)
	if err := bs.app.Err(); err != nil {
		return nil, err
	}

	if err := bs.app.Start(bs.ctx); err != nil {
		return nil, err
	}

	opt.IsOpen = true // 脚本实例已打开
	return bs, nil
}

// Close 关闭脚本实例，之后可以使用同一选项重新打开
func (bs *BS) Close() error {
	if !bs.opt.IsOpen {
		return fmt.Errorf("'%s' 脚本实例未打开", bs.opt.InstanceId)
	}
	return bs.app.Stop(bs.ctx)
}

// Options 返回实例的选项配置
func (bs *BS) Options() *Options {
	return bs.opt
}

// Hasher 返回实例的哈希服务
func (bs *BS) Hasher() *digest.Hasher {
	return bs.hasher
}

// Engine 返回实例的椭圆曲线服务
func (bs *BS) Engine() ecc.Engine {
	return bs.engine
}

// 全局初始化
func (bs *BS) globalInit() fx.Option {
	return fx.Provide(
		// 获取上下文
		func(lc fx.Lifecycle) context.Context {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					bs.opt.IsOpen = false
					return nil
				},
			})
			return bs.ctx
		},
		func() *Options {
			return bs.opt
		},
	)
}

type NewHasherInput struct {
	fx.In

	Opt *Options // 选项配置
}

type NewHasherOutput struct {
	fx.Out
	Hasher *digest.Hasher // 哈希服务
}

// NewHasher 按选项中的哈希后端创建哈希服务
func NewHasher(input NewHasherInput) (out NewHasherOutput) {
	out.Hasher = digest.NewHasher(input.Opt.Backend)
	return out
}

type NewEngineInput struct {
	fx.In

	Opt *Options // 选项配置
}

type NewEngineOutput struct {
	fx.Out
	Engine ecc.Engine // 椭圆曲线服务
}

// NewEngine 返回选项中的椭圆曲线能力，未设置时使用 btcec
func NewEngine(input NewEngineInput) (out NewEngineOutput, err error) {
	out.Engine = input.Opt.Engine
	if out.Engine == nil {
		out.Engine = ecc.NewBtcecEngine()
	}
	return out, nil
}

type InitLogInput struct {
	fx.In

	Ctx context.Context // 全局上下文
	Opt *Options        // 选项配置
}

// InitLog 为实例设置日志
func InitLog(input InitLogInput) error {
	if err := SetLog(input.Opt.LogDir, input.Opt.InstanceId, input.Opt.LogLevel); err != nil {
		logrus.Errorf("[InitLog] 设置日志失败:\t%v", err)
		return err
	}
	logrus.Debugf("[InitLog] '%s' 脚本实例日志已就绪", input.Opt.InstanceId)
	return nil
}

// Compile 将块序列编译为脚本字节
func (bs *BS) Compile(script txscript.Script) ([]byte, error) {
	raw, err := txscript.Compile(script)
	if err != nil {
		logrus.Errorf("[Compile] 编译脚本失败:\t%v", err)
		return nil, err
	}
	return raw, nil
}

// Decompile 将脚本字节反编译为块序列，脚本格式错误时返回 false
func (bs *BS) Decompile(raw []byte) (txscript.Script, bool) {
	script, ok := txscript.Decompile(raw)
	if !ok {
		logrus.Debugf("[Decompile] 脚本格式错误:\t%x", raw)
	}
	return script, ok
}

// ToASM 返回脚本的 ASM 表示形式
func (bs *BS) ToASM(src txscript.ScriptSource) (string, error) {
	asm, err := txscript.ToASM(src)
	if err != nil {
		logrus.Errorf("[ToASM] 转换脚本失败:\t%v", err)
		return "", err
	}
	return asm, nil
}

// FromASM 将 ASM 文本编译为脚本字节
func (bs *BS) FromASM(asm string) ([]byte, error) {
	raw, err := txscript.FromASM(asm)
	if err != nil {
		logrus.Errorf("[FromASM] 解析 ASM 失败:\t%v", err)
		return nil, err
	}
	return raw, nil
}

// ToStack 将只包含推送的脚本转换为堆栈项
func (bs *BS) ToStack(src txscript.ScriptSource) ([][]byte, error) {
	stack, err := txscript.ToStack(src)
	if err != nil {
		logrus.Errorf("[ToStack] 转换堆栈失败:\t%v", err)
		return nil, err
	}
	return stack, nil
}

// IsPushOnly 返回块序列是否只包含推送
func (bs *BS) IsPushOnly(script txscript.Script) bool {
	return txscript.IsPushOnly(script)
}

// CountNonPushOnlyOPs 返回块序列中非推送操作码的数量
func (bs *BS) CountNonPushOnlyOPs(script txscript.Script) int {
	return txscript.CountNonPushOnlyOPs(script)
}

// IsCanonicalPubKey 返回字节是否为合法的公钥编码
func (bs *BS) IsCanonicalPubKey(p []byte) bool {
	ok := txscript.IsCanonicalPubKey(p)
	if !ok {
		logrus.Debugf("[IsCanonicalPubKey] 公钥编码不合法:\t%x", p)
	}
	return ok
}

// IsCanonicalScriptSignature 返回字节是否为带哈希类型的严格 DER 签名
func (bs *BS) IsCanonicalScriptSignature(sig []byte) bool {
	ok := txscript.IsCanonicalScriptSignature(sig)
	if !ok {
		logrus.Debugf("[IsCanonicalScriptSignature] 签名编码不合法:\t%x", sig)
	}
	return ok
}

// IsDefinedHashType 返回哈希类型是否已定义
func (bs *BS) IsDefinedHashType(hashType byte) bool {
	return txscript.IsDefinedHashType(hashType)
}

// EncodeScriptSignature 将 64 字节签名与哈希类型编码为脚本签名
func (bs *BS) EncodeScriptSignature(sig [64]byte, hashType txscript.SigHashType) ([]byte, error) {
	b, err := txscript.EncodeScriptSignature(sig, hashType)
	if err != nil {
		logrus.Errorf("[EncodeScriptSignature] 编码签名失败:\t%v", err)
		return nil, err
	}
	return b, nil
}

// DecodeScriptSignature 解码脚本签名
func (bs *BS) DecodeScriptSignature(b []byte) (*txscript.ScriptSignature, error) {
	sig, err := txscript.DecodeScriptSignature(b)
	if err != nil {
		logrus.Errorf("[DecodeScriptSignature] 解码签名失败:\t%v", err)
		return nil, err
	}
	return sig, nil
}

// IsTaptree 返回 taproot 树是否合法
func (bs *BS) IsTaptree(tree txscript.Taptree) bool {
	return txscript.IsTaptree(tree)
}

// IsTapleaf 返回 taproot 叶是否合法
func (bs *BS) IsTapleaf(leaf *txscript.Tapleaf) bool {
	return txscript.IsTapleaf(leaf)
}

// Hash 按算法名称计算摘要
func (bs *BS) Hash(algorithm digest.Algorithm, b []byte) (*digest.Digest, error) {
	d, err := bs.hasher.Sum(algorithm, b)
	if err != nil {
		logrus.Errorf("[Hash] 计算摘要失败:\t%v", err)
		return nil, err
	}
	return d, nil
}

// Hash160 计算 ripemd160(sha256(b))
func (bs *BS) Hash160(b []byte) (*digest.Digest, error) {
	return bs.Hash(digest.AlgoHash160, b)
}

// Hash256 计算 sha256(sha256(b))
func (bs *BS) Hash256(b []byte) (*digest.Digest, error) {
	return bs.Hash(digest.AlgoHash256, b)
}

// IsXOnlyPoint 返回字节是否为 x-only 公钥
func (bs *BS) IsXOnlyPoint(p []byte) bool {
	return bs.engine.IsXOnlyPoint(p)
}

// XOnlyPointAddTweak 计算 x-only 点加调整值
func (bs *BS) XOnlyPointAddTweak(p, tweak []byte) (*ecc.XOnlyPointAddTweakResult, bool) {
	result, ok := bs.engine.XOnlyPointAddTweak(p, tweak)
	if !ok {
		logrus.Debugf("[XOnlyPointAddTweak] 调整失败:\tp=%x tweak=%x", p, tweak)
	}
	return result, ok
}
