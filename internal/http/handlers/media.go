package handlers

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/media"
	"github.com/hongminglow/estate-be/internal/models/dto"
)

// MediaHandler accepts photo uploads for the wizard's media step. A nil
// uploader means object storage is not configured.
type MediaHandler struct {
	uploader media.Uploader
	logger   *zap.Logger
}

func NewMediaHandler(uploader media.Uploader, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{uploader: uploader, logger: logger}
}

func (h *MediaHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /media", h.handleUpload)
}

func (h *MediaHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if h.uploader == nil {
		respond.Error(w, http.StatusServiceUnavailable, "image uploads are disabled")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageBytes+(1<<20))
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, media.MaxImageBytes+1))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "could not read upload")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if err := media.Validate(contentType, len(data)); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, media.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respond.Error(w, status, err.Error())
		return
	}

	url, err := h.uploader.Upload(r.Context(), header.Filename, contentType, data)
	if err != nil {
		h.logger.Error("image upload failed", zap.String("file", header.Filename), zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "failed to store image")
		return
	}
	respond.JSON(w, http.StatusCreated, "uploaded", dto.UploadResponse{URL: url})
}
