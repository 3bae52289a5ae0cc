package setting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore 模拟底层存储故障。
type failingStore struct{}

func (failingStore) GetRaw(string) (string, bool, error) { return "", false, errors.New("db down") }
func (failingStore) SetRaw(string, string) error         { return errors.New("db down") }
func (failingStore) All() ([]Setting, error)             { return nil, errors.New("db down") }

func TestTypedAccessorsRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, SetValue(store, KeyMaxDailyVideos, 5))
	require.NoError(t, SetValue(store, KeySleepModeEnabled, false))
	require.NoError(t, SetValue(store, KeyAdminPhone, "+964780"))
	require.NoError(t, SetValue(store, KeyAllowedURLPrefixes, []string{"https://a/", "https://b/"}))

	n, err := GetInt(store, KeyMaxDailyVideos, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	b, err := GetBool(store, KeySleepModeEnabled, true)
	require.NoError(t, err)
	assert.False(t, b)

	s, err := GetString(store, KeyAdminPhone, "")
	require.NoError(t, err)
	assert.Equal(t, "+964780", s)

	list, err := GetStringSlice(store, KeyAllowedURLPrefixes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a/", "https://b/"}, list)
}

func TestMissingKeyReturnsDefaultWithoutError(t *testing.T) {
	store := NewMemoryStore()

	n, err := GetInt(store, "no_such_key", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	b, err := GetBool(store, "no_such_key", true)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestStoreFailureReturnsDefaultAndError(t *testing.T) {
	// 调用方依赖err区分“缺省”和“故障”：
	// 睡眠检查在故障时放行，管理员检查在故障时拒绝。
	n, err := GetInt(failingStore{}, KeyMaxDailyVideos, 3)
	assert.Error(t, err)
	assert.Equal(t, 3, n)

	b, err := GetBool(failingStore{}, KeySleepModeEnabled, true)
	assert.Error(t, err)
	assert.True(t, b)
}

func TestMalformedValueFallsBackToDefault(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetRaw(KeyMaxDailyVideos, "not-json"))

	n, err := GetInt(store, KeyMaxDailyVideos, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSetValueOverwrites(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, SetValue(store, KeyWarningDays, 2))
	require.NoError(t, SetValue(store, KeyWarningDays, 4))

	n, err := GetInt(store, KeyWarningDays, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestAllIsSorted(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, SetValue(store, "b_key", 1))
	require.NoError(t, SetValue(store, "a_key", 2))

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a_key", all[0].Key)
}
