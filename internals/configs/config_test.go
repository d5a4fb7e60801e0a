package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitLoggerFollowsLoadedAppEnv(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	t.Setenv("APP_ENV", "production")
	LoadEnv()
	_ = InitLogger()
	assert.False(t, zap.L().Core().Enabled(zap.DebugLevel))
	assert.True(t, zap.L().Core().Enabled(zap.InfoLevel))

	t.Setenv("APP_ENV", "development")
	LoadEnv()
	_ = InitLogger()
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,172.16.0.1 ")
	LoadEnv()
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, TrustedProxies)

	assert.Equal(t, []string{"127.0.0.1", "::1"}, SplitList("127.0.0.1,::1"))
	assert.Empty(t, SplitList(" , "))
}
