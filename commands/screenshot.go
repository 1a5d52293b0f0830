package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mobile-next/screenlocator/engine"
	"github.com/mobile-next/screenlocator/utils"
)

// ScreenshotRequest represents the parameters for capturing a region
type ScreenshotRequest struct {
	Anchor     string `json:"anchor,omitempty"`     // capture this anchor instead of the search region
	Format     string `json:"format,omitempty"`     // "png" or "jpeg"
	Quality    int    `json:"quality,omitempty"`    // 1-100, only used for JPEG
	OutputPath string `json:"outputPath,omitempty"` // file path, "-" for stdout, or empty for default naming
}

// ScreenshotResponse represents the response for a screenshot command
type ScreenshotResponse struct {
	Format   string `json:"format"`
	Data     string `json:"data,omitempty"`     // base64 encoded image data
	FilePath string `json:"filePath,omitempty"` // path where file was saved
}

// ScreenshotCommand crops the current capture to the search region, or to
// an anchor, and saves or returns it
func ScreenshotCommand(req ScreenshotRequest) *CommandResponse {
	if req.Format == "" {
		req.Format = "png"
	}

	req.Format = strings.ToLower(req.Format)
	if req.Format != "png" && req.Format != "jpeg" {
		return NewErrorResponse(fmt.Errorf("invalid format '%s'. Supported formats are 'png' and 'jpeg'", req.Format))
	}

	if req.Format == "jpeg" {
		if req.Quality < 1 || req.Quality > 100 {
			req.Quality = 90
		}
	}

	return withSession(func(s *Session) *CommandResponse {
		if s.source == nil {
			return NewErrorResponse(fmt.Errorf("no screen source configured"))
		}

		region, err := s.engine.SearchRegion()
		if req.Anchor != "" {
			anchor, parseErr := engine.ParseAnchor(req.Anchor)
			if parseErr != nil {
				return NewErrorResponse(parseErr)
			}
			region, err = s.engine.Resolve(anchor, nil)
		}
		if err != nil {
			return NewErrorResponse(fmt.Errorf("failed to resolve capture region: %w", err))
		}
		if region.IsEmpty() {
			return NewErrorResponse(fmt.Errorf("region %v has no area to capture", region))
		}

		screen, origin, err := s.source.Capture()
		if err != nil {
			return NewErrorResponse(fmt.Errorf("error capturing screen: %w", err))
		}

		crop, err := utils.CropImage(screen, region.ToImage().Sub(origin).Add(screen.Bounds().Min))
		if err != nil {
			return NewErrorResponse(fmt.Errorf("region %v is not on screen: %w", region, err))
		}

		imageBytes, err := utils.EncodePng(crop)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("error encoding image: %w", err))
		}

		if req.Format == "jpeg" {
			imageBytes, err = utils.ConvertPngToJpeg(imageBytes, req.Quality)
			if err != nil {
				return NewErrorResponse(fmt.Errorf("error converting to JPEG: %w", err))
			}
		}

		response := ScreenshotResponse{
			Format: req.Format,
		}

		if req.OutputPath == "-" {
			response.Data = base64.StdEncoding.EncodeToString(imageBytes)
			return NewSuccessResponse(response)
		}

		finalPath := req.OutputPath
		if finalPath == "" {
			extension := "png"
			if req.Format == "jpeg" {
				extension = "jpg"
			}
			finalPath = fmt.Sprintf("region-%s.%s", time.Now().Format("20060102150405"), extension)
		}

		finalPath, err = filepath.Abs(finalPath)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("invalid output path: %w", err))
		}

		if err := os.WriteFile(finalPath, imageBytes, 0o600); err != nil {
			return NewErrorResponse(fmt.Errorf("error writing file: %w", err))
		}

		response.FilePath = finalPath
		return NewSuccessResponse(response)
	})
}
