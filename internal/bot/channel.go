package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Status 描述外发通道当前的连接状态。
// AuthArtifact 在通道等待授权时携带配对材料（如二维码内容）。
type Status struct {
	Ready        bool   `json:"ready"`
	AuthArtifact string `json:"authArtifact,omitempty"`
}

// Channel 是外发消息通道。Send返回是否送达，不返回error：
// 单个收件人失败由调用方记录，不中断整体流程。
type Channel interface {
	Send(ctx context.Context, address string, text string) bool
	Status() Status
}

// GatewayChannel 通过HTTP网关发送消息。
type GatewayChannel struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func NewGatewayChannel(url string, timeout time.Duration) *GatewayChannel {
	return &GatewayChannel{
		URL:     url,
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

type gatewaySendRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

func (g *GatewayChannel) Send(ctx context.Context, address string, text string) bool {
	body, err := json.Marshal(gatewaySendRequest{To: address, Text: text})
	if err != nil {
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(sendCtx, http.MethodPost, g.URL+"/send", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (g *GatewayChannel) Status() Status {
	req, err := http.NewRequest(http.MethodGet, g.URL+"/status", nil)
	if err != nil {
		return Status{}
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return Status{}
	}
	defer resp.Body.Close()

	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return Status{}
	}
	return st
}

// MemoryChannel 是测试用的内存通道，记录每次发送。
type MemoryChannel struct {
	Sent []SentMessage
	// FailFor 中列出的地址发送时返回失败。
	FailFor map[string]bool
	Online  bool
}

type SentMessage struct {
	Address string
	Text    string
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{FailFor: make(map[string]bool), Online: true}
}

func (m *MemoryChannel) Send(_ context.Context, address string, text string) bool {
	if m.FailFor[address] {
		return false
	}
	m.Sent = append(m.Sent, SentMessage{Address: address, Text: text})
	return true
}

func (m *MemoryChannel) Status() Status {
	return Status{Ready: m.Online}
}

// SentTo 返回发送给某个地址的全部消息文本。
func (m *MemoryChannel) SentTo(address string) []string {
	var out []string
	for _, s := range m.Sent {
		if s.Address == address {
			out = append(out, s.Text)
		}
	}
	return out
}
