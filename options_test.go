package btcscript

import (
	"path/filepath"
	"testing"

	"github.com/qinglongcn/btcscript/digest"
	"github.com/qinglongcn/btcscript/ecc"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opt := DefaultOptions()
	require.False(t, opt.IsOpen)
	require.Equal(t, logrus.InfoLevel, opt.LogLevel)
	require.Nil(t, opt.Engine)
	require.Nil(t, opt.Backend)
}

func TestCheckAndSetOptions(t *testing.T) {
	t.Parallel()

	opt := DefaultOptions()
	require.NoError(t, opt.CheckAndSetOptions())
	require.NotEmpty(t, opt.InstanceId)
	require.IsType(t, &ecc.BtcecEngine{}, opt.Engine)
	require.Equal(t, digest.DefaultBackend, opt.Backend)

	opt = DefaultOptions()
	opt.LogDir = "relative/logs"
	require.Error(t, opt.CheckAndSetOptions())

	opt = DefaultOptions()
	opt.IsOpen = true
	require.Error(t, opt.CheckAndSetOptions())
}

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")

	opt := DefaultOptions()
	opt.BuildInstanceId("node-1")
	opt.BuildLogDir("relative")
	require.Empty(t, opt.LogDir)
	opt.BuildLogDir(dir)
	require.Equal(t, dir, opt.LogDir)
	require.DirExists(t, dir)
	require.NoError(t, opt.BuildLogLevel("debug"))
	require.Error(t, opt.BuildLogLevel("loud"))

	engine := ecc.NewBtcecEngine()
	opt.BuildEngine(engine)
	opt.BuildBackend(digest.DefaultBackend)

	require.Equal(t, "node-1", opt.InstanceId)
	require.Equal(t, logrus.DebugLevel, opt.LogLevel)
	require.Same(t, engine, opt.Engine)

	// 实例打开后选项不再变化。
	opt.IsOpen = true
	opt.BuildInstanceId("node-2")
	require.NoError(t, opt.BuildLogLevel("error"))
	require.Equal(t, "node-1", opt.InstanceId)
	require.Equal(t, logrus.DebugLevel, opt.LogLevel)
}

func TestGenerateRandomString(t *testing.T) {
	t.Parallel()

	s, err := generateRandomString(12)
	require.NoError(t, err)
	require.Len(t, s, 12)
	require.Regexp(t, "^[0-9A-Za-z]{12}$", s)
}
