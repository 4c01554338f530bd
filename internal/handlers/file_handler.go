package handlers

import (
	"net/http"

	"freelink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *FileHandler) RegisterRoutes(g *RouteGroups) {
	g.Public.GET("/files/:category/:filename", h.ServeFile)
}

// ServeFile streams a stored résumé, avatar or logo
func (h *FileHandler) ServeFile(c *gin.Context) {
	reader, contentType, err := h.uploadService.Open(c.Request.Context(), c.Param("category"), c.Param("filename"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}
