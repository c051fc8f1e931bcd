package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UploadResponse is the body of the upload endpoint. It is not wrapped in the common envelope.
type UploadResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadSuccess reports a stored file by its public path
func UploadSuccess(c echo.Context, path string) error {
	return c.JSON(http.StatusCreated, UploadResponse{Success: true, Path: path})
}

// UploadFailure reports a rejected or failed upload. The status must be non-2xx.
func UploadFailure(c echo.Context, statusCode int, message string) error {
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}

	return c.JSON(statusCode, UploadResponse{Error: message})
}
