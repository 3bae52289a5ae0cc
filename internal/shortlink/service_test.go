package shortlink

import (
	"strings"
	"testing"

	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDegradesWhenRedisUnhealthy(t *testing.T) {
	database.UpdateStatus(false, "")
	svc := NewService("http://localhost:8080")

	url, comp, err := svc.Create("vid-1", "https://redzapp.app.link/abc")
	require.NoError(t, err)
	// 降级：直接返回原链，补偿器是空操作
	assert.Equal(t, "https://redzapp.app.link/abc", url)
	require.NotNil(t, comp)
	comp.RollbackUnlessCommitted()
}

func TestCompensatorNilSafety(t *testing.T) {
	var comp *Compensator
	// 创建失败路径上补偿器可能为nil，两个方法都必须可安全调用
	comp.Commit()
	comp.RollbackUnlessCommitted()
}

func TestRandomCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		assert.NotContains(t, code, "/")
		seen[code] = true
	}
	// 100个码全部重复的概率可以忽略
	assert.Greater(t, len(seen), 90)
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	svc := NewService("http://localhost:8080/")
	assert.False(t, strings.HasSuffix(svc.BaseURL, "/"))
}
