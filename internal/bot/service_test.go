package bot

import (
	"testing"
	"time"

	"github.com/RedzGroup/redz-bot-backend/internal/botlog"
	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"
	"github.com/RedzGroup/redz-bot-backend/internal/setting"
	"github.com/RedzGroup/redz-bot-backend/internal/video"
	"github.com/RedzGroup/redz-bot-backend/pkg/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminPhone = "+9647800000001"
	noonHour   = 12
)

type testEnv struct {
	svc          *Service
	members      *member.MemoryStore
	videos       *video.MemoryStore
	interactions *interaction.MemoryStore
	logs         *botlog.MemoryStore
	settings     *setting.MemoryStore
	channel      *MemoryChannel
	now          time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// 测试环境没有Redis，号码缓存等热路径必须回退到数据库
	database.UpdateStatus(false, "")

	settings := setting.NewMemoryStore()
	for key, value := range map[string]interface{}{
		setting.KeyMaxDailyVideos:      3,
		setting.KeyWarningDays:         2,
		setting.KeyAutoRemoveDays:      7,
		setting.KeySleepModeEnabled:    true,
		setting.KeyAdminPhone:          adminPhone,
		setting.KeyAllowedURLPrefixes:  []string{"https://redzapp.app.link/", "https://thexapp.app.link/"},
		setting.KeyDistributionDelayMS: 0,
		setting.KeyBulkMessageDelayMS:  0,
	} {
		require.NoError(t, setting.SetValue(settings, key, value))
	}

	manager := lifecycle.NewManager()
	handle, err := manager.NewServiceHandle("bot-core")
	require.NoError(t, err)

	env := &testEnv{
		members:      member.NewMemoryStore(),
		videos:       video.NewMemoryStore(),
		interactions: interaction.NewMemoryStore(),
		logs:         botlog.NewMemoryStore(),
		settings:     settings,
		channel:      NewMemoryChannel(),
		now:          time.Date(2025, 6, 15, noonHour, 0, 0, 0, time.Local),
	}
	env.svc = NewService(env.members, env.videos, env.interactions, env.logs,
		settings, env.channel, nil, handle)
	env.svc.now = func() time.Time { return env.now }
	return env
}

func (e *testEnv) addMember(t *testing.T, phone, status string) *member.Member {
	t.Helper()
	m, err := member.NewMember(phone, member.DefaultNickname(phone), e.now.Add(-48*time.Hour))
	require.NoError(t, err)
	m.Status = status
	m.JoinedAt = e.now.Add(-48 * time.Hour)
	last := e.now.Add(-1 * time.Hour)
	m.LastInteractionAt = &last
	require.NoError(t, e.members.Create(m))
	return m
}

func TestJoinKeywordCreatesPendingMember(t *testing.T) {
	env := newTestEnv(t)

	env.svc.HandleInbound("+9641000001", "ريدز")

	m, err := env.members.GetByPhone("+9641000001")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, member.StatusPending, m.Status)
	assert.NotEmpty(t, m.MemberID)

	// 收到条款消息
	sent := env.channel.SentTo("+9641000001")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "الشروط")
}

func TestUnknownPhoneNonKeywordIsIgnored(t *testing.T) {
	env := newTestEnv(t)

	env.svc.HandleInbound("+9641000002", "مرحبا")
	env.svc.HandleInbound("+9641000002", "https://redzapp.app.link/abc")
	// 包含但不等于关键词也不触发
	env.svc.HandleInbound("+9641000002", "اريد ريدز الان")

	m, err := env.members.GetByPhone("+9641000002")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Empty(t, env.channel.Sent)
}

func TestJoinKeywordVariants(t *testing.T) {
	env := newTestEnv(t)

	env.svc.HandleInbound("+9641000003", "  REDZ ")
	env.svc.HandleInbound("+9641000004", "رِيدْز")

	for _, phone := range []string{"+9641000003", "+9641000004"} {
		m, err := env.members.GetByPhone(phone)
		require.NoError(t, err)
		require.NotNil(t, m, phone)
	}
}

func TestConsentFlow(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000005", member.StatusPending)

	env.svc.HandleInbound(m.Phone, "أوافق")

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusAwaitingApproval, updated.Status)

	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "للموافقة النهائية")

	// 管理员收到入群申请通知
	adminSent := env.channel.SentTo(adminPhone)
	require.Len(t, adminSent, 1)
	assert.Contains(t, adminSent[0], m.Phone)

	// 再次同意只得到等待提示
	env.svc.HandleInbound(m.Phone, "نعم")
	sent = env.channel.SentTo(m.Phone)
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1], "قيد المراجعة")
}

func TestConsentFromSuspendedMember(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000006", member.StatusSuspended)

	env.svc.HandleInbound(m.Phone, "موافق")

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusSuspended, updated.Status)
	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "تم إيقاف عضويتك")
}

func TestDeclineDeactivatesMember(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000007", member.StatusPending)

	env.svc.HandleInbound(m.Phone, "رفض")

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusInactive, updated.Status)
}

func TestVideoSubmissionAndDistribution(t *testing.T) {
	env := newTestEnv(t)
	sender := env.addMember(t, "+9641000010", member.StatusActive)
	recipientA := env.addMember(t, "+9641000011", member.StatusActive)
	recipientB := env.addMember(t, "+9641000012", member.StatusActive)
	failing := env.addMember(t, "+9641000013", member.StatusActive)
	env.channel.FailFor[failing.Phone] = true

	env.svc.HandleInbound(sender.Phone, "https://redzapp.app.link/v1")

	// 视频已入库
	videos, err := env.videos.ListAll()
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, sender.MemberID, videos[0].MemberID)
	assert.Equal(t, "https://redzapp.app.link/v1", videos[0].OriginalURL)

	// 快照是N-1：两个成功收件人，失败的那个不计入
	assert.Equal(t, 2, videos[0].SentToMembers)

	// 发送者收到确认，不会收到自己的视频
	senderSent := env.channel.SentTo(sender.Phone)
	require.Len(t, senderSent, 1)
	assert.Contains(t, senderSent[0], "1/3")

	for _, r := range []*member.Member{recipientA, recipientB} {
		got := env.channel.SentTo(r.Phone)
		require.Len(t, got, 1, r.Phone)
		assert.Contains(t, got[0], "https://redzapp.app.link/v1")
		assert.Contains(t, got[0], sender.Nickname)
	}

	// 单个收件人的失败被记录，没有打断整体分发
	errorLogs := env.logs.ByType(botlog.TypeError)
	require.NotEmpty(t, errorLogs)
	assert.Contains(t, errorLogs[0].Message, failing.Phone)

	// 发送者的计数已更新
	updated, _ := env.members.GetByID(sender.MemberID)
	assert.Equal(t, 1, updated.TotalVideos)
	assert.Equal(t, 1, updated.DailyVideosCount)
	require.NotNil(t, updated.LastVideoAt)
}

func TestDailyLimitEnforced(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000020", member.StatusActive)

	for i := 0; i < 3; i++ {
		env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v1")
		env.now = env.now.Add(time.Minute)
	}
	videos, _ := env.videos.ListAll()
	require.Len(t, videos, 3)

	env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v4")

	videos, _ = env.videos.ListAll()
	assert.Len(t, videos, 3)
	sent := env.channel.SentTo(m.Phone)
	assert.Contains(t, sent[len(sent)-1], "الأقصى اليومي")
}

func TestDailyLimitResetsAtMidnight(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000021", member.StatusActive)

	for i := 0; i < 3; i++ {
		env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v1")
	}

	// 跨过本地午夜后配额重新可用
	env.now = env.now.Add(24 * time.Hour)
	env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v5")

	videos, _ := env.videos.ListAll()
	assert.Len(t, videos, 4)
}

func TestForeignLinkRejectedWithoutRecord(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000022", member.StatusActive)

	env.svc.HandleInbound(m.Phone, "https://youtube.com/watch?v=abc")

	videos, _ := env.videos.ListAll()
	assert.Empty(t, videos)
	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "نقبل فقط روابط ريدز")
}

func TestSubmissionFromNonActiveMemberIgnored(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000023", member.StatusPending)

	env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v1")

	videos, _ := env.videos.ListAll()
	assert.Empty(t, videos)
	assert.Empty(t, env.channel.SentTo(m.Phone))
}

func TestSleepWindowBlocksNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000030", member.StatusActive)
	env.now = time.Date(2025, 6, 15, 3, 0, 0, 0, time.Local)

	env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v1")

	videos, _ := env.videos.ListAll()
	assert.Empty(t, videos)
	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "سبات")
}

func TestSleepWindowAdminBypass(t *testing.T) {
	env := newTestEnv(t)
	// 管理员自己也是活跃成员，号码带格式差异仍能识别
	admin := env.addMember(t, "+964 780-000-0001", member.StatusActive)
	env.now = time.Date(2025, 6, 15, 3, 0, 0, 0, time.Local)

	env.svc.HandleInbound(admin.Phone, "https://redzapp.app.link/v1")

	videos, _ := env.videos.ListAll()
	require.Len(t, videos, 1)
	sent := env.channel.SentTo(admin.Phone)
	require.NotEmpty(t, sent)
	assert.NotContains(t, sent[0], "سبات")
}

func TestSleepModeDisabledBySetting(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000031", member.StatusActive)
	require.NoError(t, setting.SetValue(env.settings, setting.KeySleepModeEnabled, false))
	env.now = time.Date(2025, 6, 15, 3, 0, 0, 0, time.Local)

	env.svc.HandleInbound(m.Phone, "https://redzapp.app.link/v1")

	videos, _ := env.videos.ListAll()
	assert.Len(t, videos, 1)
}

func TestHelpAndStatsCommands(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000040", member.StatusActive)
	m.TotalVideos = 5
	m.TotalInteractions = 12
	m.EngagementRate = 40
	require.NoError(t, env.members.Save(m))

	env.svc.HandleInbound(m.Phone, "مساعده")
	env.svc.HandleInbound(m.Phone, "احصائيات")

	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0], "تعليمات")
	assert.Contains(t, sent[1], "إجمالي الفيديوهات: 5")
	assert.Contains(t, sent[1], "إجمالي التفاعلات: 12")
	assert.Contains(t, sent[1], "40%")
}

func TestHelpKeywordVariants(t *testing.T) {
	for _, text := range []string{"مساعدة", "مساعده", "HELP"} {
		env := newTestEnv(t)
		m := env.addMember(t, "+9641000041", member.StatusActive)

		env.svc.HandleInbound(m.Phone, text)

		sent := env.channel.SentTo(m.Phone)
		require.Len(t, sent, 1, "keyword %q", text)
		assert.Contains(t, sent[0], "تعليمات")
	}
}

func TestFallbackOnlyForActiveMembers(t *testing.T) {
	env := newTestEnv(t)
	active := env.addMember(t, "+9641000041", member.StatusActive)
	pending := env.addMember(t, "+9641000042", member.StatusPending)

	env.svc.HandleInbound(active.Phone, "متى الاجتماع؟")
	env.svc.HandleInbound(pending.Phone, "متى الاجتماع؟")

	assert.Len(t, env.channel.SentTo(active.Phone), 1)
	assert.Contains(t, env.channel.SentTo(active.Phone)[0], "لم أفهم")
	assert.Empty(t, env.channel.SentTo(pending.Phone))

	// "الاجتماع"里的"لا"不能触发退出
	updated, _ := env.members.GetByID(active.MemberID)
	assert.Equal(t, member.StatusActive, updated.Status)
}

func TestDeclineOnlyAppliesToPendingMembers(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000044", member.StatusActive)

	env.svc.HandleInbound(m.Phone, "لا")

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusActive, updated.Status)
	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "لم أفهم")
}

func TestInactiveMemberRejoinsWithKeyword(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000045", member.StatusInactive)

	// 非关键词仍然沉默
	env.svc.HandleInbound(m.Phone, "مرحبا")
	assert.Empty(t, env.channel.SentTo(m.Phone))

	env.svc.HandleInbound(m.Phone, "ريدز")

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusPending, updated.Status)
	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "الشروط")
}

func TestWarningMemberRestoredOnInbound(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000043", member.StatusWarning)

	env.svc.HandleInbound(m.Phone, "مساعدة")

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusActive, updated.Status)
	require.NotNil(t, updated.LastInteractionAt)
	assert.True(t, updated.LastInteractionAt.Equal(env.now))
}

func TestApproveMemberSendsExactlyTwoMessages(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000050", member.StatusAwaitingApproval)

	ok, err := env.svc.ApproveMember(m.MemberID)
	require.NoError(t, err)
	assert.True(t, ok)

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusActive, updated.Status)

	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0], "مبروك")
	assert.Contains(t, sent[1], "تعليمات")
	// 除被批准者外没有任何外发
	assert.Len(t, env.channel.Sent, 2)

	joined := env.logs.ByType(botlog.TypeMemberJoined)
	require.Len(t, joined, 1)
	assert.Equal(t, m.MemberID, joined[0].MemberID)
}

func TestApproveMissingMember(t *testing.T) {
	env := newTestEnv(t)
	ok, err := env.svc.ApproveMember("no-such-id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRejectMemberWithReason(t *testing.T) {
	env := newTestEnv(t)
	m := env.addMember(t, "+9641000051", member.StatusAwaitingApproval)

	ok, err := env.svc.RejectMember(m.MemberID, "مخالفة الشروط")
	require.NoError(t, err)
	assert.True(t, ok)

	updated, _ := env.members.GetByID(m.MemberID)
	assert.Equal(t, member.StatusInactive, updated.Status)

	sent := env.channel.SentTo(m.Phone)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "السبب: مخالفة الشروط")
}

func TestRegisterMemberFromWebIdempotent(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.RegisterMemberFromWeb("+9641000060", "أحمد")
	require.NoError(t, err)
	assert.True(t, created)

	// 同一号码第二次登记失败，且不再发送条款
	created, err = env.svc.RegisterMemberFromWeb("+9641000060", "أحمد")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Len(t, env.channel.SentTo("+9641000060"), 1)

	m, _ := env.members.GetByPhone("+9641000060")
	require.NotNil(t, m)
	assert.Equal(t, "أحمد", m.Nickname)
	assert.Equal(t, member.StatusPending, m.Status)
}

func TestSendBulkMessage(t *testing.T) {
	env := newTestEnv(t)
	env.channel.FailFor["+9641000072"] = true

	res := env.svc.SendBulkMessage(
		[]string{"+9641000071", "+9641000072", "+9641000073"}, "إعلان مهم")

	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, env.channel.SentTo("+9641000071"), "إعلان مهم")
}
