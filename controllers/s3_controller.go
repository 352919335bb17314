package controllers

import (
	"net/http"

	"github.com/11Rojas/mascoticas-backend/services"
)

// S3Controller hands out presigned URLs for chat images.
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the S3 controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleUploadURL returns a presigned PUT URL plus the object key.
func (c *S3Controller) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	contentType := r.URL.Query().Get("fileType")

	url, key, err := c.S3Service.PresignUpload(r.Context(), fileName, contentType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "key": key})
}

// HandleReadURL returns a presigned GET URL for a stored key.
func (c *S3Controller) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")

	url, err := c.S3Service.PresignRead(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"readUrl": url})
}
