package server

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/screenlocator/commands"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// GetMethodRegistry returns a map of method names to handler functions
// This is used by both the HTTP and the WebSocket transport
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"screens":       handleScreens,
		"region_set":    handleRegionSet,
		"region_get":    handleRegionGet,
		"region_reset":  handleRegionReset,
		"target_screen": handleTargetScreen,
		"find":          handleFind,
		"exists":        handleExists,
		"find_all":      handleFindAll,
		"count":         handleCount,
		"wait":          handleWait,
		"vanish":        handleVanish,
		"nth":           handleNth,
		"text":          handleText,
		"scroll":        handleScroll,
		"parse":         handleParse,
		"settings":      handleSettings,
		"screenshot":    handleScreenshot,
	}
}

// Execute dispatches a method call using the registry
func Execute(method string, params json.RawMessage) (interface{}, error) {
	registry := GetMethodRegistry()

	handler, exists := registry[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &paramsError{err: err}
	}
	return nil
}

// unwrap turns a command response into a JSON-RPC result or error
func unwrap(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleScreens(params json.RawMessage) (interface{}, error) {
	return unwrap(commands.ScreensCommand())
}

func handleRegionSet(params json.RawMessage) (interface{}, error) {
	var req commands.RegionSetRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.RegionSetCommand(req))
}

func handleRegionGet(params json.RawMessage) (interface{}, error) {
	return unwrap(commands.RegionGetCommand())
}

func handleRegionReset(params json.RawMessage) (interface{}, error) {
	return unwrap(commands.RegionResetCommand())
}

func handleTargetScreen(params json.RawMessage) (interface{}, error) {
	var req commands.TargetScreenRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.TargetScreenCommand(req))
}

func handleFind(params json.RawMessage) (interface{}, error) {
	var req commands.FindRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.FindCommand(req))
}

func handleExists(params json.RawMessage) (interface{}, error) {
	var req commands.FindRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.ExistsCommand(req))
}

func handleFindAll(params json.RawMessage) (interface{}, error) {
	var req commands.FindRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.FindAllCommand(req))
}

func handleCount(params json.RawMessage) (interface{}, error) {
	var req commands.FindRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.CountCommand(req))
}

func handleWait(params json.RawMessage) (interface{}, error) {
	var req commands.WaitRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.WaitCommand(req))
}

func handleVanish(params json.RawMessage) (interface{}, error) {
	var req commands.WaitRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.VanishCommand(req))
}

func handleNth(params json.RawMessage) (interface{}, error) {
	var req commands.NthRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.NthCommand(req))
}

func handleText(params json.RawMessage) (interface{}, error) {
	var req commands.ReadTextRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.ReadTextCommand(req))
}

func handleScroll(params json.RawMessage) (interface{}, error) {
	var req commands.ScrollRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.ScrollCommand(req))
}

func handleParse(params json.RawMessage) (interface{}, error) {
	var req commands.ParseRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.ParseCommand(req))
}

func handleSettings(params json.RawMessage) (interface{}, error) {
	var req commands.SettingsRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return unwrap(commands.SettingsCommand(req))
}

// ScreenshotParams represents the parameters for the screenshot request
type ScreenshotParams struct {
	Anchor  string `json:"anchor,omitempty"`
	Format  string `json:"format,omitempty"`  // "png" or "jpeg"
	Quality int    `json:"quality,omitempty"` // 1-100, only used for JPEG
}

func handleScreenshot(params json.RawMessage) (interface{}, error) {
	var screenshotParams ScreenshotParams
	if err := decodeParams(params, &screenshotParams); err != nil {
		return nil, err
	}

	req := commands.ScreenshotRequest{
		Anchor:     screenshotParams.Anchor,
		Format:     screenshotParams.Format,
		Quality:    screenshotParams.Quality,
		OutputPath: "-", // always return base64 data for server
	}

	response := commands.ScreenshotCommand(req)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	if screenshotResp, ok := response.Data.(commands.ScreenshotResponse); ok {
		return map[string]interface{}{
			"format": screenshotResp.Format,
			"data":   fmt.Sprintf("data:image/%s;base64,%s", screenshotResp.Format, screenshotResp.Data),
		}, nil
	}

	return nil, fmt.Errorf("unexpected response format")
}
