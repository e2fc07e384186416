package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type presignedUrlRequest struct {
	FileType string `json:"fileType"`
	FileName string `json:"fileName"`
	Folder   string `json:"folder"`
}

// GeneratePresignedUrl handles POST /upload/presigned-url. The client
// uploads directly to object storage with the returned URL; this API never
// sees the bytes.
func (s *Server) GeneratePresignedUrl(c *gin.Context) {
	var req presignedUrlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileType == "" {
		errorJSON(c, http.StatusBadRequest, "fileType is required")
		return
	}
	if req.Folder == "" {
		req.Folder = "posts"
	}

	result, err := s.FileStore.GeneratePresignedUploadUrl(req.FileType, req.FileName, req.Folder)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error generating upload URL: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}
