package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemberDefaults(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	m, err := NewMember("+9647812258859", "", now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, m.Status)
	assert.Equal(t, "عضو 8859", m.Nickname)
	assert.Equal(t, now, m.JoinedAt)
	assert.NotEmpty(t, m.MemberID)

	// 外部ID彼此不同
	m2, err := NewMember("+9647812258859", "", now)
	require.NoError(t, err)
	assert.NotEqual(t, m.MemberID, m2.MemberID)
}

func TestDefaultNicknameShortPhone(t *testing.T) {
	assert.Equal(t, "عضو 123", DefaultNickname("123"))
}

func TestEngagementRateFor(t *testing.T) {
	// 没有投稿时没有互动率
	assert.Equal(t, 0, EngagementRateFor(10, 0, 5))

	// 2条投稿、4个受众、8次互动 → 100×8/8 = 100
	assert.Equal(t, 100, EngagementRateFor(8, 2, 5))

	// 一半受众互动 → 50
	assert.Equal(t, 50, EngagementRateFor(4, 2, 5))

	// 四舍五入: 100×1/3 ≈ 33
	assert.Equal(t, 33, EngagementRateFor(1, 1, 4))
	// 100×2/3 ≈ 67
	assert.Equal(t, 67, EngagementRateFor(2, 1, 4))

	// 超额互动封顶100
	assert.Equal(t, 100, EngagementRateFor(50, 1, 3))

	// 只有发送者自己活跃时受众按1计
	assert.Equal(t, 100, EngagementRateFor(1, 1, 1))
}

func TestRecompute(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	m, err := NewMember("+9641", "", now)
	require.NoError(t, err)
	m.Status = StatusActive
	m.TotalVideos = 2
	m.TotalInteractions = 4
	require.NoError(t, store.Create(m))

	for _, phone := range []string{"+9642", "+9643", "+9644", "+9645"} {
		other, err := NewMember(phone, "", now)
		require.NoError(t, err)
		other.Status = StatusActive
		require.NoError(t, store.Create(other))
	}

	require.NoError(t, Recompute(store, m.MemberID))

	updated, err := store.GetByID(m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.EngagementRate)
}

func TestRecordInteraction(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	m, err := NewMember("+9641", "", now)
	require.NoError(t, err)
	m.Status = StatusActive
	m.TotalVideos = 2
	require.NoError(t, store.Create(m))

	// 短链点击的记账序列：先累加互动，再重算互动率
	require.NoError(t, RecordInteraction(store, m.MemberID))

	updated, err := store.GetByID(m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalInteractions)
	assert.Equal(t, 50, updated.EngagementRate)

	require.NoError(t, RecordInteraction(store, m.MemberID))

	updated, err = store.GetByID(m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalInteractions)
	assert.Equal(t, 100, updated.EngagementRate)
}

func TestRecordInteractionMissingMember(t *testing.T) {
	store := NewMemoryStore()
	require.Error(t, RecordInteraction(store, "no-such-id"))
}

func TestStoreCreateRejectsDuplicatePhone(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	m1, err := NewMember("+9641000001", "", now)
	require.NoError(t, err)
	require.NoError(t, store.Create(m1))

	m2, err := NewMember("+9641000001", "", now)
	require.NoError(t, err)
	assert.ErrorIs(t, store.Create(m2), ErrPhoneExists)
}

func TestStoreGetByPhoneMissing(t *testing.T) {
	store := NewMemoryStore()
	m, err := store.GetByPhone("+0000")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestStoreListActiveAndCount(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	statuses := []string{StatusActive, StatusActive, StatusPending, StatusWarning}
	for i, status := range statuses {
		m, err := NewMember("+964100000"+string(rune('0'+i)), "", now)
		require.NoError(t, err)
		m.Status = status
		require.NoError(t, store.Create(m))
	}

	active, err := store.ListActive()
	require.NoError(t, err)
	assert.Len(t, active, 2)

	count, err := store.CountActive()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStoreResetDailyCounts(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	m, err := NewMember("+9641000001", "", now)
	require.NoError(t, err)
	m.DailyVideosCount = 3
	require.NoError(t, store.Create(m))

	require.NoError(t, store.ResetDailyCounts())

	updated, _ := store.GetByID(m.MemberID)
	assert.Zero(t, updated.DailyVideosCount)
}

func TestStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	m, err := NewMember("+9641000001", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Create(m))

	got, _ := store.GetByID(m.MemberID)
	got.Nickname = "changed"

	again, _ := store.GetByID(m.MemberID)
	assert.NotEqual(t, "changed", again.Nickname)
}

func TestKeyLockSerializesSameKey(t *testing.T) {
	locks := NewKeyLock()
	counter := 0
	done := make(chan struct{})

	for i := 0; i < 50; i++ {
		go func() {
			unlock := locks.Acquire("+9641")
			defer unlock()
			counter++
			done <- struct{}{}
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}
	assert.Equal(t, 50, counter)
}
