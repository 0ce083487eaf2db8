package handler

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/infrastructure/storage"
	"gigspace/pkg/errors"
	"gigspace/pkg/response"
)

const maxUploadBytes = 10 << 20

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

// Upload stores one attachment and returns its public URL. The folder query
// parameter groups uploads (chat-attachments, portfolio, logos).
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing file field", err))
	}
	if fileHeader.Size > maxUploadBytes {
		return response.Error(c, errors.BadRequest("File exceeds the 10MB limit", nil))
	}

	folder := c.QueryParam("folder")
	if folder == "" {
		folder = "chat-attachments"
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.storageClient.UploadFile(c.Request().Context(), src, contentType, folder)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to store file", err))
	}

	return response.Created(c, map[string]string{"url": url})
}

type deleteFileRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func (h *FileHandler) Delete(c echo.Context) error {
	var req deleteFileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.storageClient.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}
