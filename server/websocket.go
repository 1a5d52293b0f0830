package server

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mobile-next/screenlocator/utils"
)

const (
	wsBufferSize = 1024

	errMsgTextOnly = "only text messages accepted for requests"
)

// wsPeer is one WebSocket client. Requests are answered in order on the
// reading goroutine, so the engine sees the same call sequence the client
// sent and a region set by one request anchors the next.
type wsPeer struct {
	conn     *websocket.Conn
	registry map[string]HandlerFunc

	writeMu sync.Mutex
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	checkOrigin := isSameOrigin
	if enableCORS {
		checkOrigin = func(r *http.Request) bool { return true }
	}

	return &websocket.Upgrader{
		ReadBufferSize:  wsBufferSize,
		WriteBufferSize: wsBufferSize,
		CheckOrigin:     checkOrigin,
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, enableCORS bool, shutdown func()) {
	conn, err := newUpgrader(enableCORS).Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("WebSocket upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	peer := &wsPeer{conn: conn, registry: GetMethodRegistry()}
	if peer.serve() && shutdown != nil {
		shutdown()
	}
}

// serve reads requests until the peer goes away or asks for a shutdown,
// and reports which of the two happened.
func (p *wsPeer) serve() bool {
	for {
		messageType, message, err := p.conn.ReadMessage()
		if err != nil {
			utils.Verbose("WebSocket connection closed: %v", err)
			return false
		}

		if messageType != websocket.TextMessage {
			p.reply(nil, nil, &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgTextOnly})
			continue
		}

		if p.answer(message) {
			return true
		}
	}
}

func (p *wsPeer) answer(message []byte) bool {
	req, rpcErr := parseRequest(message)
	if rpcErr != nil {
		p.reply(req.ID, nil, rpcErr)
		return false
	}

	utils.Info("WebSocket Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	if req.Method == MethodShutdown {
		p.reply(req.ID, okResponse, nil)
		return true
	}

	result, rpcErr := callMethod(p.registry, req)
	p.reply(req.ID, result, rpcErr)
	return false
}

func (p *wsPeer) reply(id interface{}, result interface{}, rpcErr *rpcError) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if err := p.conn.WriteJSON(newResponse(id, result, rpcErr)); err != nil {
		utils.Verbose("WebSocket write failed: %v", err)
	}
}
