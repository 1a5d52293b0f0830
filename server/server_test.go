package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/recognition"
	"github.com/mobile-next/screenlocator/screens"
	"github.com/mobile-next/screenlocator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRecognizer struct {
	matches []types.Match
}

func (f *fixedRecognizer) FindAll(p locator.Pattern, within types.Rect) ([]types.Match, error) {
	if p.Path != "ok.png" {
		return nil, nil
	}
	return f.matches, nil
}

func (f *fixedRecognizer) FindOne(p locator.Pattern, within types.Rect) (types.Match, bool, error) {
	found, _ := f.FindAll(p, within)
	if len(found) == 0 {
		return types.Match{}, false, nil
	}
	return found[0], true, nil
}

func (f *fixedRecognizer) ReadText(within types.Rect) (string, error) {
	return "Total: 42", nil
}

func installSession(t *testing.T) {
	t.Helper()

	layout := screens.NewLayout(
		[]types.Rect{types.NewRect(0, 0, 640, 480)},
		map[string]types.Rect{"Editor": types.NewRect(40, 40, 200, 100)},
		"editor",
	)
	rec := &fixedRecognizer{matches: []types.Match{
		{Rect: types.NewRect(100, 200, 20, 20)},
		{Rect: types.NewRect(10, 200, 20, 20)},
		{Rect: types.NewRect(50, 20, 20, 20)},
	}}
	source := &recognition.StaticSource{Image: image.NewRGBA(image.Rect(0, 0, 640, 480))}

	commands.SetSession(commands.NewSession(layout, rec, source))
	t.Cleanup(func() { _ = commands.Shutdown() })
}

func postRPC(t *testing.T, url string, body string) JSONRPCResponse {
	t.Helper()

	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRootEndpoint(t *testing.T) {
	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, "ok", data["status"])
}

func TestRPCEndpoint_MethodNotAllowed(t *testing.T) {
	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestJSONRPCValidation(t *testing.T) {
	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantData string
	}{
		{"invalid json", `{not json`, ErrCodeParseError, errMsgParseError},
		{"wrong version", `{"jsonrpc":"1.0","method":"screens","id":1}`, ErrCodeInvalidRequest, errMsgInvalidJSONRPC},
		{"missing id", `{"jsonrpc":"2.0","method":"screens"}`, ErrCodeInvalidRequest, errMsgIDRequired},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrCodeInvalidRequest, errMsgMethodRequired},
		{"unknown method", `{"jsonrpc":"2.0","method":"click","id":1}`, ErrCodeMethodNotFound, "Method 'click' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRPC(t, server.URL, tt.body)
			require.NotNil(t, resp.Error)

			errorMap := resp.Error.(map[string]interface{})
			assert.Equal(t, float64(tt.wantCode), errorMap["code"])
			assert.Equal(t, tt.wantData, errorMap["data"])
		})
	}
}

func TestRPC_RegionAndFind(t *testing.T) {
	installSession(t)

	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"region_set","params":{"anchor":"active","offsets":"10, 10, -20, -20"},"id":1}`)
	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	region := result["region"].(map[string]interface{})
	assert.Equal(t, float64(50), region["x"])
	assert.Equal(t, float64(180), region["width"])

	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"nth","params":{"locator":"ok.png","index":2},"id":2}`)
	require.Nil(t, resp.Error)
	match := resp.Result.(map[string]interface{})["match"].(map[string]interface{})
	rect := match["rect"].(map[string]interface{})
	assert.Equal(t, float64(10), rect["x"])
	assert.Equal(t, float64(200), rect["y"])
	assert.Equal(t, float64(2), match["ordinal"])

	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"count","params":{"locator":"ok.png"},"id":3}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, float64(3), resp.Result.(map[string]interface{})["count"])

	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"text","params":{"locator":"ok.png","zone":"right = 100"},"id":4}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, "Total: 42", resp.Result.(map[string]interface{})["text"])

	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"find","params":{"locator":"cancel.png"},"id":5}`)
	require.NotNil(t, resp.Error)
	errorMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeServerError), errorMap["code"])
	assert.Contains(t, errorMap["data"], "no matching pattern")
}

func TestRPC_InvalidParams(t *testing.T) {
	installSession(t)

	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"find","params":[1,2],"id":1}`)
	require.NotNil(t, resp.Error)
	errorMap := resp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeInvalidParams), errorMap["code"])
	assert.Contains(t, errorMap["data"], "invalid parameters")

	// a command failure on well-formed params stays a server error
	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"find","params":{"locator":""},"id":2}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, float64(ErrCodeServerError), resp.Error.(map[string]interface{})["code"])
}

func TestRPC_WaitAndVanish(t *testing.T) {
	installSession(t)

	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"wait","params":{"locator":"ok.png","timeout":0},"id":1}`)
	require.Nil(t, resp.Error)
	match := resp.Result.(map[string]interface{})["match"].(map[string]interface{})
	rect := match["rect"].(map[string]interface{})
	assert.Equal(t, float64(100), rect["x"])

	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"vanish","params":{"locator":"cancel.png","timeout":0},"id":2}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, true, resp.Result.(map[string]interface{})["vanished"])

	resp = postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"vanish","params":{"locator":"ok.png","timeout":0},"id":3}`)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.(map[string]interface{})["data"], "still visible")
}

func TestCallMethod(t *testing.T) {
	registry := map[string]HandlerFunc{
		"echo": func(params json.RawMessage) (interface{}, error) {
			return string(params), nil
		},
		"decode": func(params json.RawMessage) (interface{}, error) {
			var v struct{ N int }
			return nil, decodeParams(params, &v)
		},
		"fail": func(params json.RawMessage) (interface{}, error) {
			return nil, errors.New("boom")
		},
		"panic": func(params json.RawMessage) (interface{}, error) {
			panic("nil map")
		},
	}

	tests := []struct {
		method   string
		params   string
		wantCode int
	}{
		{"decode", `{"N":"x"}`, ErrCodeInvalidParams},
		{"fail", `{}`, ErrCodeServerError},
		{"panic", `{}`, ErrCodeInternalError},
		{"missing", `{}`, ErrCodeMethodNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			_, rpcErr := callMethod(registry, JSONRPCRequest{JSONRPC: "2.0", Method: tt.method, Params: json.RawMessage(tt.params), ID: 1})
			require.NotNil(t, rpcErr)
			assert.Equal(t, tt.wantCode, rpcErr.Code)
		})
	}

	result, rpcErr := callMethod(registry, JSONRPCRequest{JSONRPC: "2.0", Method: "echo", Params: json.RawMessage(`[1]`), ID: 1})
	require.Nil(t, rpcErr)
	assert.Equal(t, "[1]", result)
}

func TestRPC_Screenshot(t *testing.T) {
	installSession(t)

	server := httptest.NewServer(NewHandler(false, nil))
	defer server.Close()

	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"screenshot","params":{"anchor":"active"},"id":1}`)
	require.Nil(t, resp.Error)
	data := resp.Result.(map[string]interface{})["data"].(string)
	assert.True(t, strings.HasPrefix(data, "data:image/png;base64,"))
}

func TestRPC_Shutdown(t *testing.T) {
	var called atomic.Bool
	server := httptest.NewServer(NewHandler(false, func() { called.Store(true) }))
	defer server.Close()

	resp := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"server.shutdown","id":1}`)
	require.Nil(t, resp.Error)
	assert.True(t, called.Load())
}

func TestCORS(t *testing.T) {
	server := httptest.NewServer(NewHandler(true, nil))
	defer server.Close()

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/rpc", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestExecute(t *testing.T) {
	result, err := Execute("parse", json.RawMessage(`{"kind":"offsets","value":"1, 2, 3, 4"}`))
	require.NoError(t, err)
	assert.Equal(t, locator.Offsets{DX: 1, DY: 2, DW: 3, DH: 4}, result)

	_, err = Execute("nope", nil)
	assert.ErrorContains(t, err, "method not found")
}

func TestNormalizeAddr(t *testing.T) {
	addr, err := normalizeAddr("12000")
	require.NoError(t, err)
	assert.Equal(t, ":12000", addr)

	addr, err = normalizeAddr("localhost:13000")
	require.NoError(t, err)
	assert.Equal(t, "localhost:13000", addr)

	_, err = normalizeAddr("port")
	assert.Error(t, err)
}
