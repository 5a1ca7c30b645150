package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Client gorilla 连接的写安全包装
// gorilla/websocket 不允许并发写，请求处理与后台调度可能同时向
// 同一连接投递，因此所有写操作都串行化在内部互斥锁之后。
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient 包装一个已完成握手的 WebSocket 连接
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// SendJSON 加锁串行发送一条 JSON 消息
func (c *Client) SendJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

// ReadText 阻塞读取下一条文本帧
func (c *Client) ReadText() (string, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClosePolicyViolation 发送 1008 关闭帧后断开，用于认证失败路径
func (c *Client) ClosePolicyViolation(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = c.conn.WriteMessage(websocket.CloseMessage, msg)
	_ = c.conn.Close()
}

// Close 关闭底层连接
func (c *Client) Close() error {
	return c.conn.Close()
}
