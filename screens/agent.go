package screens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/types"
	"github.com/mobile-next/screenlocator/utils"
)

// agent error codes for missing screens and windows
const (
	codeScreenNotFound = -32001
	codeWindowNotFound = -32002
)

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      string      `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      string          `json:"id"`
}

// AgentClient asks a desktop automation agent for live geometry over a
// WebSocket JSON-RPC connection. The connection is opened lazily and
// re-established after a disconnect.
type AgentClient struct {
	httpURL    string
	wsURL      string
	httpClient *http.Client
	timeout    time.Duration

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan rpcResponse
}

func NewAgentClient(hostname string, port int) *AgentClient {
	return &AgentClient{
		httpURL: fmt.Sprintf("http://%s:%d", hostname, port),
		wsURL:   fmt.Sprintf("ws://%s:%d", hostname, port),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		timeout: 5 * time.Second,
		pending: make(map[string]chan rpcResponse),
	}
}

func (c *AgentClient) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.wsURL+"/rpc", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to agent: %w", err)
	}

	c.conn = conn
	go c.readLoop(conn)
	return nil
}

func (c *AgentClient) readLoop(conn *websocket.Conn) {
	for {
		var resp rpcResponse
		if err := conn.ReadJSON(&resp); err != nil {
			c.mu.Lock()
			// a superseded connection must not fail calls made on its successor
			if c.conn == conn {
				c.conn = nil
				for _, ch := range c.pending {
					close(ch)
				}
				c.pending = make(map[string]chan rpcResponse)
			}
			c.mu.Unlock()
			return
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()

		if ok {
			ch <- resp
		}
	}
}

func (c *AgentClient) Close() {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan rpcResponse)
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	for _, ch := range pending {
		close(ch)
	}
}

func (c *AgentClient) call(method string, params interface{}, out interface{}) error {
	if err := c.connect(); err != nil {
		return err
	}

	id := uuid.NewString()
	ch := make(chan rpcResponse, 1)

	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return fmt.Errorf("agent connection closed")
	}
	c.pending[id] = ch
	err := c.conn.WriteJSON(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: id})
	c.mu.Unlock()

	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return fmt.Errorf("failed to send %s: %w", method, err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return fmt.Errorf("agent connection closed while waiting for %s", method)
		}
		if resp.Error != nil {
			return &AgentError{Method: method, Code: resp.Error.Code, Message: resp.Error.Message}
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
		return nil

	case <-time.After(c.timeout):
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return fmt.Errorf("timeout waiting for response to %s", method)
	}
}

// AgentError is a JSON-RPC error returned by the agent.
type AgentError struct {
	Method  string
	Code    int
	Message string
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent error %d on %s: %s", e.Code, e.Method, e.Message)
}

func hasCode(err error, code int) bool {
	var agentErr *AgentError
	return errors.As(err, &agentErr) && agentErr.Code == code
}

func (c *AgentClient) ScreenCount() (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := c.call("screens.count", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *AgentClient) ScreenBounds(index int) (types.Rect, error) {
	var r types.Rect
	err := c.call("screens.bounds", map[string]int{"index": index}, &r)
	if hasCode(err, codeScreenNotFound) {
		count, countErr := c.ScreenCount()
		if countErr != nil {
			return types.Rect{}, countErr
		}
		return types.Rect{}, &locator.ScreenNotFoundError{Index: index, Count: count}
	}
	return r, err
}

func (c *AgentClient) FocusedWindowBounds() (types.Rect, error) {
	var r types.Rect
	err := c.call("windows.focused", nil, &r)
	if hasCode(err, codeWindowNotFound) {
		return types.Rect{}, &locator.WindowNotFoundError{}
	}
	return r, err
}

func (c *AgentClient) NamedWindowBounds(name string) (types.Rect, error) {
	var r types.Rect
	err := c.call("windows.bounds", map[string]string{"name": name}, &r)
	if hasCode(err, codeWindowNotFound) {
		return types.Rect{}, &locator.WindowNotFoundError{Name: name}
	}
	return r, err
}

// HealthCheck asks the agent's /health endpoint whether it is serving.
func (c *AgentClient) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.httpURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// WaitForReady polls HealthCheck until it passes or timeout runs out.
func (c *AgentClient) WaitForReady(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for agent to be ready")
		case <-ticker.C:
			if err := c.HealthCheck(); err != nil {
				utils.Verbose("Agent not ready yet: %v", err)
				continue
			}
			utils.Verbose("Agent is ready")
			return nil
		}
	}
}
