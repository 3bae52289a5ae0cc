package bot

import (
	"errors"
	"testing"

	"github.com/RedzGroup/redz-bot-backend/internal/setting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore 模拟配置存储整体不可用。
type brokenStore struct{}

func (brokenStore) GetRaw(string) (string, bool, error) {
	return "", false, errors.New("storage offline")
}
func (brokenStore) SetRaw(string, string) error { return errors.New("storage offline") }
func (brokenStore) All() ([]setting.Setting, error) {
	return nil, errors.New("storage offline")
}

func TestAllowedPrefixesFallsBackOnStoreFailure(t *testing.T) {
	p := &Policy{Settings: brokenStore{}}

	prefixes := p.AllowedPrefixes()
	assert.Equal(t, setting.DefaultAllowedURLPrefixes, prefixes)

	// 存储挂掉时正常来源的链接不能被当外链拒掉
	kind, _ := ClassifyLink("https://redzapp.app.link/v1", prefixes)
	assert.Equal(t, LinkAccepted, kind)
}

func TestAllowedPrefixesMissingKeyUsesDefaults(t *testing.T) {
	p := &Policy{Settings: setting.NewMemoryStore()}
	assert.Equal(t, setting.DefaultAllowedURLPrefixes, p.AllowedPrefixes())
}

func TestAllowedPrefixesReadsConfiguredList(t *testing.T) {
	store := setting.NewMemoryStore()
	require.NoError(t, setting.SetValue(store, setting.KeyAllowedURLPrefixes,
		[]string{"https://example.app.link/"}))

	p := &Policy{Settings: store}
	assert.Equal(t, []string{"https://example.app.link/"}, p.AllowedPrefixes())
}
