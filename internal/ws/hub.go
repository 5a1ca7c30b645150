package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Sender 可向单个客户端投递 JSON 消息的连接句柄
type Sender interface {
	SendJSON(v interface{}) error
}

// Hub 在线连接注册表：user_id → 连接集合
// 由应用构造并注入连接处理与通知投递两条路径，连接 map 仅由 Hub 持有，
// 所有读写都经过内部读写锁。投递是尽力而为的：发送失败只会剔除该连接，
// 绝不影响已落库的通知，也不影响同一用户的其他连接。
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]map[Sender]struct{}
	logger *zap.Logger
}

// NewHub 创建连接注册表
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]map[Sender]struct{}),
		logger: logger,
	}
}

// Register 注册用户连接（重复注册同一连接为幂等操作）
func (h *Hub) Register(userID string, conn Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[userID]
	if !ok {
		set = make(map[Sender]struct{})
		h.conns[userID] = set
	}
	set[conn] = struct{}{}

	h.logger.Info("WebSocket 连接已注册",
		zap.String("user_id", userID),
		zap.Int("connections", len(set)),
	)
}

// Unregister 移除用户连接，集合清空后回收整个用户条目
func (h *Hub) Unregister(userID string, conn Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[userID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, userID)
	}

	h.logger.Info("WebSocket 连接已注销", zap.String("user_id", userID))
}

// PushToUser 向用户的全部在线连接投递 payload
// 无任何连接时静默返回；单个连接发送失败时记录日志并注销该连接，
// 不影响其余连接的投递。
func (h *Hub) PushToUser(userID string, payload interface{}) {
	h.mu.RLock()
	set, ok := h.conns[userID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	// 持锁期间拷贝快照，发送阶段不占用注册表锁
	targets := make([]Sender, 0, len(set))
	for conn := range set {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	var failed []Sender
	for _, conn := range targets {
		if err := conn.SendJSON(payload); err != nil {
			h.logger.Warn("WebSocket 投递失败，将注销该连接",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			failed = append(failed, conn)
		}
	}

	for _, conn := range failed {
		h.Unregister(userID, conn)
	}
}

// PushToMany 逐个用户调用 PushToUser，用户间无顺序与原子性保证
func (h *Hub) PushToMany(userIDs []string, payload interface{}) {
	for _, userID := range userIDs {
		h.PushToUser(userID, payload)
	}
}

// ConnectionCount 返回用户当前在线连接数
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}
