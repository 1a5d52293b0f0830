package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mobile-next/screenlocator/utils"
)

// rpcError is a JSON-RPC error object ready to be sent back to the caller
type rpcError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *rpcError) object() map[string]interface{} {
	return map[string]interface{}{
		"code":    e.Code,
		"message": e.Message,
		"data":    e.Data,
	}
}

// paramsError is returned by decodeParams so transports can answer with
// ErrCodeInvalidParams instead of a generic server error.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string {
	return fmt.Sprintf("invalid parameters: %v", e.err)
}

func (e *paramsError) Unwrap() error {
	return e.err
}

func newResponse(id interface{}, result interface{}, rpcErr *rpcError) JSONRPCResponse {
	response := JSONRPCResponse{JSONRPC: "2.0", ID: id}
	if rpcErr != nil {
		response.Error = rpcErr.object()
	} else {
		response.Result = result
	}
	return response
}

func parseRequest(payload []byte) (JSONRPCRequest, *rpcError) {
	var req JSONRPCRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return JSONRPCRequest{}, &rpcError{ErrCodeParseError, errTitleParseError, errMsgParseError}
	}
	return req, validateRequest(req)
}

func validateRequest(req JSONRPCRequest) *rpcError {
	switch {
	case req.JSONRPC != "2.0":
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgInvalidJSONRPC}
	case req.ID == nil:
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgIDRequired}
	case req.Method == "":
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgMethodRequired}
	}
	return nil
}

// callMethod runs a validated request against the registry. A handler panic
// is reported as an internal error instead of tearing down the connection.
func callMethod(registry map[string]HandlerFunc, req JSONRPCRequest) (result interface{}, rpcErr *rpcError) {
	handler, exists := registry[req.Method]
	if !exists {
		return nil, &rpcError{ErrCodeMethodNotFound, "Method not found", fmt.Sprintf("Method '%s' not found", req.Method)}
	}

	defer func() {
		if r := recover(); r != nil {
			utils.Warn("Method %s panicked: %v", req.Method, r)
			result, rpcErr = nil, &rpcError{ErrCodeInternalError, "Internal error", fmt.Sprint(r)}
		}
	}()

	result, err := handler(req.Params)
	if err != nil {
		utils.Warn("Error executing method %s: %v", req.Method, err)

		var pe *paramsError
		if errors.As(err, &pe) {
			return nil, &rpcError{ErrCodeInvalidParams, "Invalid params", err.Error()}
		}
		return nil, &rpcError{ErrCodeServerError, "Server error", err.Error()}
	}

	return result, nil
}
