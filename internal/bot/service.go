package bot

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/RedzGroup/redz-bot-backend/internal/botlog"
	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/setting"
	"github.com/RedzGroup/redz-bot-backend/internal/shortlink"
	"github.com/RedzGroup/redz-bot-backend/internal/video"
	"github.com/RedzGroup/redz-bot-backend/pkg/artext"
	"github.com/RedzGroup/redz-bot-backend/pkg/lifecycle"
)

// Service 是机器人的核心：状态机、配额、分发都在这里。
// 所有依赖显式注入，没有包级可变状态。
type Service struct {
	Members      member.Store
	Videos       video.Store
	Interactions interaction.Store
	Logs         botlog.Store
	Policy       *Policy
	Channel      Channel
	// Shortlinks 为nil时分发直接使用原始链接。
	Shortlinks *shortlink.Service

	handle   *lifecycle.Handle
	locks    *member.KeyLock
	now      func() time.Time
	inflight sync.WaitGroup
}

func NewService(
	members member.Store,
	videos video.Store,
	interactions interaction.Store,
	logs botlog.Store,
	settings setting.Store,
	channel Channel,
	shortlinks *shortlink.Service,
	handle *lifecycle.Handle,
) *Service {
	return &Service{
		Members:      members,
		Videos:       videos,
		Interactions: interactions,
		Logs:         logs,
		Policy:       &Policy{Settings: settings},
		Channel:      channel,
		Shortlinks:   shortlinks,
		handle:       handle,
		locks:        member.NewKeyLock(),
		now:          time.Now,
	}
}

// Start 注册停机协调：收到停机信号后等待在途的入站处理结束，
// 再向生命周期管理器确认退出。
func (s *Service) Start() {
	go func() {
		<-s.handle.Done()
		s.inflight.Wait()
		s.handle.Close()
	}()
}

// send 发送一条消息并写审计日志。失败记录error日志，不向上传播。
func (s *Service) send(memberID, phone, text string) bool {
	ok := s.Channel.Send(s.handle.Ctx(), phone, text)
	if ok {
		_ = s.Logs.Append(botlog.Event(botlog.TypeMessageSent, memberID,
			fmt.Sprintf("Sent to %s", phone),
			map[string]interface{}{"phone": phone, "messageLength": len(text)}))
	} else {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, memberID,
			fmt.Sprintf("Failed to send message to %s", phone),
			map[string]interface{}{"phone": phone}))
	}
	return ok
}

// lookupMember 按号码查找成员。Redis已知号码集合健康时用它挡掉
// 陌生号码的数据库查询；不健康或号码在集合内时回源数据库。
func (s *Service) lookupMember(phone string) (*member.Member, error) {
	known, err := member.IsKnownPhone(phone)
	if err == nil && !known {
		return nil, nil
	}
	return s.Members.GetByPhone(phone)
}

// HandleInbound 处理一条入站消息。同一号码的消息串行处理，
// 不同号码并发互不阻塞。
func (s *Service) HandleInbound(phone, text string) {
	s.inflight.Add(1)
	defer s.inflight.Done()

	unlock := s.locks.Acquire(phone)
	defer unlock()

	now := s.now()
	body := strings.TrimSpace(text)

	_ = s.Logs.Append(botlog.Event(botlog.TypeMessageReceived, "",
		fmt.Sprintf("Received from %s: %s", phone, body),
		map[string]interface{}{"phone": phone, "messageBody": body}))

	// 静默时段：除管理员外一律只回提示。
	if s.Policy.IsSleepWindow(now) && !s.Policy.IsAdmin(phone) {
		s.send("", phone, msgSleepMode)
		return
	}

	m, err := s.lookupMember(phone)
	if err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, "",
			"Member lookup failed: "+err.Error(),
			map[string]interface{}{"phone": phone}))
		return
	}

	normalized := artext.Normalize(body)

	if m == nil {
		// 陌生号码只响应入群关键词，其余一律沉默。
		if !artext.IsJoin(normalized) {
			return
		}
		s.createPendingMember(phone, now)
		return
	}

	// 任何入站消息都算一次活跃；警告状态的成员借此恢复。
	m.LastInteractionAt = &now
	if m.Status == member.StatusWarning {
		m.Status = member.StatusActive
	}
	if err := s.Members.Save(m); err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
			"Failed to update member activity: "+err.Error(), nil))
	}

	// 退出过的成员可以用入群关键词重新回到待同意状态。
	if m.Status == member.StatusInactive && artext.IsJoin(normalized) {
		m.Status = member.StatusPending
		if err := s.Members.Save(m); err != nil {
			_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
				"Failed to reset member to pending: "+err.Error(), nil))
			return
		}
		s.send(m.MemberID, phone, s.Policy.WelcomeMessage())
		return
	}

	if artext.IsConsent(normalized) && s.handleConsent(m) {
		return
	}

	// 拒绝只在待同意阶段生效；正式成员的普通聊天里
	// 出现"لا"不能把人踢成inactive。
	if m.Status == member.StatusPending && artext.IsDecline(normalized) {
		m.Status = member.StatusInactive
		_ = s.Members.Save(m)
		s.send(m.MemberID, phone, msgDeclined)
		return
	}

	switch kind, url := ClassifyLink(body, s.Policy.AllowedPrefixes()); kind {
	case LinkForeign:
		s.send(m.MemberID, phone, msgForeignLink)
		return
	case LinkAccepted:
		s.handleVideoSubmission(m, url, now)
		return
	}

	if artext.IsHelp(normalized) {
		s.sendInstructions(m.MemberID, phone)
		return
	}

	if artext.IsStats(normalized) {
		s.sendMemberStats(m, now)
		return
	}

	// 兜底回复只发给正式成员，避免对半路状态的号码刷屏。
	if m.Status == member.StatusActive {
		s.send(m.MemberID, phone, msgNotUnderstood)
	}
}

func (s *Service) createPendingMember(phone string, now time.Time) {
	m, err := member.NewMember(phone, member.DefaultNickname(phone), now)
	if err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, "",
			"Failed to build member: "+err.Error(),
			map[string]interface{}{"phone": phone}))
		return
	}
	if err := s.Members.Create(m); err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, "",
			"Failed to create member: "+err.Error(),
			map[string]interface{}{"phone": phone}))
		return
	}
	member.CachePhone(phone)
	s.send(m.MemberID, phone, s.Policy.WelcomeMessage())
}

// handleConsent 返回是否消费了这条消息。active成员发"نعم"之类的
// 普通对话不算同意，落回后面的分支。
func (s *Service) handleConsent(m *member.Member) bool {
	switch m.Status {
	case member.StatusSuspended:
		s.send(m.MemberID, m.Phone, msgSuspended)
		return true
	case member.StatusPending:
		m.Status = member.StatusAwaitingApproval
		if err := s.Members.Save(m); err != nil {
			_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
				"Failed to save consent: "+err.Error(), nil))
			return true
		}
		s.send(m.MemberID, m.Phone, msgConsentReceived)
		s.notifyAdminForApproval(m)
		return true
	case member.StatusAwaitingApproval:
		s.send(m.MemberID, m.Phone, msgAwaitingApproval)
		return true
	case member.StatusActive:
		s.sendInstructions(m.MemberID, m.Phone)
		return true
	}
	return false
}

func (s *Service) notifyAdminForApproval(m *member.Member) {
	admin, err := setting.GetString(s.Policy.Settings, setting.KeyAdminPhone, "")
	if err != nil || admin == "" {
		return
	}
	when := s.now().Format("2006-01-02 15:04")
	if s.send("", admin, msgAdminJoinRequest(m.Nickname, m.Phone, when)) {
		_ = s.Logs.Append(botlog.Event(botlog.TypeMessageSent, m.MemberID,
			"Admin notification sent for member approval: "+m.Phone,
			map[string]interface{}{"adminPhone": admin}))
	}
}

func (s *Service) sendInstructions(memberID, phone string) {
	text := s.Policy.Instructions()
	if text == "" {
		text = msgInstructions
	}
	s.send(memberID, phone, text)
}

func (s *Service) sendMemberStats(m *member.Member, now time.Time) {
	midnight := localMidnight(now)
	todayCount, err := s.Videos.CountByMemberSince(m.MemberID, midnight)
	if err != nil {
		todayCount = 0
	}
	limit := s.Policy.DailyLimit()
	s.send(m.MemberID, m.Phone,
		msgStats(m.TotalVideos, m.TotalInteractions, m.EngagementRate, int(todayCount), limit))
}

func localMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) handleVideoSubmission(m *member.Member, url string, now time.Time) {
	// 非正式成员提交链接不回应。
	if m.Status != member.StatusActive {
		return
	}

	midnight := localMidnight(now)
	count, err := s.Videos.CountByMemberSince(m.MemberID, midnight)
	if err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
			"Failed to count daily videos: "+err.Error(), nil))
		s.send(m.MemberID, m.Phone, msgSubmissionError)
		return
	}

	limit := s.Policy.DailyLimit()
	if int(count) >= limit {
		s.send(m.MemberID, m.Phone, msgDailyLimitReached(limit))
		return
	}

	v, err := video.NewVideo(m.MemberID, url, "فيديو من "+m.Nickname, now)
	if err != nil {
		s.send(m.MemberID, m.Phone, msgSubmissionError)
		return
	}

	// 短链失败降级为原链，不阻塞提交。
	shortURL := url
	var comp *shortlink.Compensator
	if s.Shortlinks != nil {
		if su, c, err := s.Shortlinks.Create(v.VideoID, url); err == nil {
			shortURL, comp = su, c
		} else {
			_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
				"Shortlink creation failed: "+err.Error(), nil))
		}
	}
	v.ShortURL = shortURL

	if err := s.Videos.Create(v); err != nil {
		comp.RollbackUnlessCommitted()
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
			"Failed to save video: "+err.Error(), nil))
		s.send(m.MemberID, m.Phone, msgSubmissionError)
		return
	}
	comp.Commit()

	m.DailyVideosCount = int(count) + 1
	m.LastVideoAt = &now
	m.TotalVideos++
	if err := s.Members.Save(m); err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, m.MemberID,
			"Failed to update member counters: "+err.Error(), nil))
	}
	_ = member.Recompute(s.Members, m.MemberID)

	s.send(m.MemberID, m.Phone, msgSubmissionConfirmed(int(count)+1, limit))

	sent := s.distribute(v, m)
	_ = s.Videos.SetSentToMembers(v.VideoID, sent, s.now())

	_ = s.Logs.Append(botlog.Event(botlog.TypeMessageSent, m.MemberID,
		"Video submitted and distributed: "+url,
		map[string]interface{}{"videoId": v.VideoID, "sentToMembers": sent}))
}

// distribute 把视频按当前活跃成员快照逐个发送。快照在循环前取定，
// 循环期间的成员变动不影响本次分发。单个收件人失败只记日志。
func (s *Service) distribute(v *video.Video, sender *member.Member) int {
	recipients, err := s.Members.ListActive()
	if err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, sender.MemberID,
			"Failed to snapshot recipients: "+err.Error(), nil))
		return 0
	}

	text := msgDistributedVideo(sender.Nickname, v.ShortURL)
	delay := s.Policy.DistributionDelay()
	sent := 0
	for _, r := range recipients {
		if r.MemberID == sender.MemberID {
			continue
		}
		if s.send(r.MemberID, r.Phone, text) {
			sent++
		}
		if err := s.handle.Sleep(delay); err != nil {
			// 停机：不再继续，已发出去的照常计数。
			break
		}
	}
	return sent
}

// ApproveMember 管理员批准成员。发送批准通知和使用说明各一条。
func (s *Service) ApproveMember(memberID string) (bool, error) {
	m, err := s.Members.GetByID(memberID)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}

	now := s.now()
	m.Status = member.StatusActive
	if m.JoinedAt.IsZero() {
		m.JoinedAt = now
	}
	if err := s.Members.Save(m); err != nil {
		return false, err
	}

	s.send(m.MemberID, m.Phone, msgApproved)
	s.sendInstructions(m.MemberID, m.Phone)

	_ = s.Logs.Append(botlog.Event(botlog.TypeMemberJoined, m.MemberID,
		"Member approved and activated: "+m.Phone,
		map[string]interface{}{"approvedAt": now.Format(time.RFC3339)}))
	return true, nil
}

// RejectMember 管理员拒绝成员，可附原因。
func (s *Service) RejectMember(memberID, reason string) (bool, error) {
	m, err := s.Members.GetByID(memberID)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}

	m.Status = member.StatusInactive
	if err := s.Members.Save(m); err != nil {
		return false, err
	}

	s.send(m.MemberID, m.Phone, msgRejected(reason))

	_ = s.Logs.Append(botlog.Event(botlog.TypeMemberRemoved, m.MemberID,
		"Member rejected: "+m.Phone,
		map[string]interface{}{"reason": reason, "rejectedAt": s.now().Format(time.RFC3339)}))
	return true, nil
}

// RegisterMemberFromWeb 从管理面板登记成员并发送入群条款。
// 号码已存在时返回false，不发送任何消息。
func (s *Service) RegisterMemberFromWeb(phone, nickname string) (bool, error) {
	unlock := s.locks.Acquire(phone)
	defer unlock()

	existing, err := s.Members.GetByPhone(phone)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if nickname == "" {
		nickname = member.DefaultNickname(phone)
	}
	m, err := member.NewMember(phone, nickname, s.now())
	if err != nil {
		return false, err
	}
	if err := s.Members.Create(m); err != nil {
		if err == member.ErrPhoneExists {
			return false, nil
		}
		return false, err
	}
	member.CachePhone(phone)
	s.send(m.MemberID, phone, s.Policy.WelcomeMessage())
	return true, nil
}

// BulkResult 是一次群发的结果统计。
type BulkResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendBulkMessage 按号码列表逐个发送同一条消息。
func (s *Service) SendBulkMessage(phones []string, text string) BulkResult {
	s.inflight.Add(1)
	defer s.inflight.Done()

	var res BulkResult
	delay := s.Policy.BulkMessageDelay()
	for i, phone := range phones {
		if s.send("", phone, text) {
			res.Sent++
		} else {
			res.Failed++
		}
		if err := s.handle.Sleep(delay); err != nil {
			res.Failed += len(phones) - i - 1
			break
		}
	}
	return res
}

// Status 返回外发通道的连接状态。
func (s *Service) Status() Status {
	return s.Channel.Status()
}
