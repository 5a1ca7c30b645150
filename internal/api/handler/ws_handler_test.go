package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/config"
	"github.com/jyjuk/backend-internship/internal/dto"
	"github.com/jyjuk/backend-internship/internal/ws"
	"github.com/jyjuk/backend-internship/pkg/jwt"
)

// ── Mock AuthService（仅 WebSocket 认证路径需要 GetCurrentUser）──

type mockAuthService struct {
	user *dto.UserResponse
	err  error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return nil
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.user, m.err
}

// ── Test Helpers ──

func newWSTestServer(authSvc *mockAuthService) (*httptest.Server, *ws.Hub, *jwt.Manager) {
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	hub := ws.NewHub(zap.NewNop())
	h := NewWSHandler(hub, jwtMgr, authSvc, zap.NewNop())

	r := gin.New()
	r.GET("/ws/notifications", h.Notifications)
	return httptest.NewServer(r), hub, jwtMgr
}

func dialWS(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, err
}

// expectPolicyViolationClose 读取下一帧并断言连接以 1008 关闭
func expectPolicyViolationClose(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatal("认证失败的连接不应收到业务消息")
	}
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Errorf("期望关闭码1008，实际=%v", err)
	}
}

// ── 认证失败路径 ──

func TestWSHandler_InvalidToken_Closed1008(t *testing.T) {
	srv, hub, _ := newWSTestServer(&mockAuthService{})
	defer srv.Close()

	conn, err := dialWS(t, srv, "not-a-jwt")
	if err != nil {
		t.Fatalf("握手应完成（随后以关闭帧拒绝）: %v", err)
	}
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
	if hub.ConnectionCount("user-1") != 0 {
		t.Errorf("认证失败不应注册连接")
	}
}

func TestWSHandler_MissingToken_Closed1008(t *testing.T) {
	srv, _, _ := newWSTestServer(&mockAuthService{})
	defer srv.Close()

	conn, err := dialWS(t, srv, "")
	if err != nil {
		t.Fatalf("握手应完成: %v", err)
	}
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
}

func TestWSHandler_RefreshToken_Closed1008(t *testing.T) {
	// Refresh Token 不是合法的连接凭证
	srv, _, jwtMgr := newWSTestServer(&mockAuthService{
		user: &dto.UserResponse{ID: "user-1", IsActive: true},
	})
	defer srv.Close()

	token, err := jwtMgr.GenerateRefreshToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	conn, err := dialWS(t, srv, token)
	if err != nil {
		t.Fatalf("握手应完成: %v", err)
	}
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
}

func TestWSHandler_InactiveUser_Closed1008(t *testing.T) {
	srv, hub, jwtMgr := newWSTestServer(&mockAuthService{
		user: &dto.UserResponse{ID: "user-1", IsActive: false},
	})
	defer srv.Close()

	token, err := jwtMgr.GenerateAccessToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	conn, err := dialWS(t, srv, token)
	if err != nil {
		t.Fatalf("握手应完成: %v", err)
	}
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
	if hub.ConnectionCount("user-1") != 0 {
		t.Errorf("停用用户不应注册连接")
	}
}

// ── 认证成功路径 ──

func TestWSHandler_Connect_GreetingAndPingPong(t *testing.T) {
	srv, hub, jwtMgr := newWSTestServer(&mockAuthService{
		user: &dto.UserResponse{ID: "user-1", IsActive: true},
	})
	defer srv.Close()

	token, err := jwtMgr.GenerateAccessToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	conn, err := dialWS(t, srv, token)
	if err != nil {
		t.Fatalf("握手应成功: %v", err)
	}
	defer conn.Close()

	// 首帧为连接确认
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var greeting map[string]interface{}
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("读取连接确认失败: %v", err)
	}
	if greeting["type"] != "connection_established" {
		t.Errorf("期望type=connection_established，实际=%v", greeting["type"])
	}

	// ping 回 pong
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("发送 ping 失败: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var pong map[string]interface{}
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("读取 pong 失败: %v", err)
	}
	if pong["type"] != "pong" {
		t.Errorf("期望type=pong，实际=%v", pong["type"])
	}

	// 收到 pong 即说明读循环已启动，连接必已注册
	if hub.ConnectionCount("user-1") != 1 {
		t.Errorf("期望在线连接数=1，实际=%d", hub.ConnectionCount("user-1"))
	}

	// 关闭后连接应被注销
	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount("user-1") != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("断开后连接应被注销，当前=%d", hub.ConnectionCount("user-1"))
		}
		time.Sleep(10 * time.Millisecond)
	}
}
