package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jyjuk/backend-internship/internal/service"
	"github.com/jyjuk/backend-internship/internal/ws"
	"github.com/jyjuk/backend-internship/pkg/jwt"
)

// WSHandler WebSocket 通知推送处理器
type WSHandler struct {
	hub      *ws.Hub
	jwtMgr   *jwt.Manager
	authSvc  service.AuthService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWSHandler 创建 WSHandler
func NewWSHandler(hub *ws.Hub, jwtMgr *jwt.Manager, authSvc service.AuthService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:     hub,
		jwtMgr:  jwtMgr,
		authSvc: authSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 跨域控制由 CORS 中间件负责，升级阶段不再二次校验
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Notifications 建立通知推送长连接
// GET /ws/notifications?token=<access_token>
//
// 认证通过 query 参数携带的 Access Token 完成。认证失败时仍完成协议升级，
// 随后以 1008 (policy violation) 关闭，使浏览器客户端能读到关闭原因。
func (h *WSHandler) Notifications(c *gin.Context) {
	token := c.Query("token")

	var userID string
	authErr := ""
	if token == "" {
		authErr = "missing token"
	} else if claims, err := h.jwtMgr.ParseToken(token); err != nil {
		authErr = "invalid token"
	} else if claims.TokenType != "access" {
		authErr = "invalid token type"
	} else if user, err := h.authSvc.GetCurrentUser(c.Request.Context(), claims.UserID); err != nil {
		authErr = "unknown user"
	} else if !user.IsActive {
		authErr = "inactive user"
	} else {
		userID = claims.UserID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时 gorilla 已写入 HTTP 错误响应
		h.logger.Warn("WebSocket 升级失败", zap.Error(err))
		return
	}
	client := ws.NewClient(conn)

	if authErr != "" {
		client.ClosePolicyViolation(authErr)
		return
	}

	if err := client.SendJSON(gin.H{
		"type":    "connection_established",
		"message": "Connected to notification service",
	}); err != nil {
		client.Close()
		return
	}

	h.hub.Register(userID, client)
	defer func() {
		h.hub.Unregister(userID, client)
		client.Close()
	}()

	// 读循环：ping 回 pong，其余消息忽略，连接断开即退出
	for {
		msg, err := client.ReadText()
		if err != nil {
			return
		}
		if msg == "ping" {
			if err := client.SendJSON(gin.H{"type": "pong"}); err != nil {
				return
			}
		}
	}
}
