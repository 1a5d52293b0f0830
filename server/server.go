package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mobile-next/screenlocator/utils"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603
)

const (
	errTitleParseError   = "Parse error"
	errTitleInvalidReq   = "Invalid Request"
	errMsgParseError     = "expecting jsonrpc payload"
	errMsgInvalidJSONRPC = "'jsonrpc' must be '2.0'"
	errMsgIDRequired     = "'id' field is required"
	errMsgMethodRequired = "'method' is required"
)

// Server timeouts
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 60 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// MethodShutdown stops the server; it is handled by the server itself rather
// than the method registry.
const MethodShutdown = "server.shutdown"

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewHandler builds the HTTP handler serving "/", "/rpc" and "/ws".
// shutdown is called once a server.shutdown request has been answered; it
// may be nil.
func NewHandler(enableCORS bool, shutdown func()) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", func(w http.ResponseWriter, r *http.Request) {
		handleJSONRPC(w, r, shutdown)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, enableCORS, shutdown)
	})

	if enableCORS {
		return corsMiddleware(mux)
	}
	return mux
}

// normalizeAddr turns a bare port into ":port"
func normalizeAddr(addr string) (string, error) {
	if strings.Contains(addr, ":") {
		return addr, nil
	}

	port, err := strconv.Atoi(addr)
	if err != nil {
		return "", fmt.Errorf("invalid port: %v", err)
	}
	return fmt.Sprintf(":%d", port), nil
}

func StartServer(addr string, enableCORS bool) error {
	addr, err := normalizeAddr(addr)
	if err != nil {
		return err
	}

	host, port, err := utils.ParseHostPort(addr)
	if err != nil {
		return err
	}
	if host == "" {
		host = "localhost"
	}
	if !utils.IsPortAvailable(host, port) {
		return fmt.Errorf("port %d is already in use on %s", port, host)
	}

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	server.Handler = NewHandler(enableCORS, func() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				utils.Warn("Error shutting down server: %v", err)
			}
		}()
	})

	utils.Info("Starting server on http://%s...", server.Addr)
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		utils.Info("Server stopped")
		return nil
	}
	return err
}

func handleJSONRPC(w http.ResponseWriter, r *http.Request, shutdown func()) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	req, rpcErr := parseRequest(body)
	if rpcErr != nil {
		sendJSONRPC(w, newResponse(req.ID, nil, rpcErr))
		return
	}

	utils.Info("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	if req.Method == MethodShutdown {
		sendJSONRPC(w, newResponse(req.ID, okResponse, nil))
		if shutdown != nil {
			shutdown()
		}
		return
	}

	result, rpcErr := callMethod(GetMethodRegistry(), req)
	sendJSONRPC(w, newResponse(req.ID, result, rpcErr))
}

func sendJSONRPC(w http.ResponseWriter, response JSONRPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
