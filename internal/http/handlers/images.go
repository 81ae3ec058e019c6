package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mechgenz/mechgenz-backend/internal/http/response"
	"github.com/mechgenz/mechgenz-backend/internal/services"
)

type ImagesHandler struct {
	images services.ImageCatalogService
}

func NewImagesHandler(images services.ImageCatalogService) *ImagesHandler {
	return &ImagesHandler{images: images}
}

// GET /api/website-images
func (ih *ImagesHandler) List(c *gin.Context) {
	images, err := ih.images.List(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"images":      images,
		"total_count": len(images),
	})
}

// GET /api/website-images/categories
func (ih *ImagesHandler) Categories(c *gin.Context) {
	cats := ih.images.Categories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": cats})
}

// POST /api/website-images/:id/upload (multipart/form-data, field "file")
func (ih *ImagesHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}

	url, err := ih.images.Upload(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Image uploaded successfully",
		"image_url": url,
	})
}

// PUT /api/website-images/:id
// body: { "name": "...", "description": "..." }
func (ih *ImagesHandler) UpdateMetadata(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := ih.images.UpdateMetadata(c.Request.Context(), c.Param("id"), req.Name, req.Description); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image information updated"})
}

// DELETE /api/website-images/:id/reset
func (ih *ImagesHandler) Reset(c *gin.Context) {
	img, err := ih.images.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Image reset to default",
		"default_url": img.DefaultURL,
	})
}

// DELETE /api/website-images/:id?delete_type=image_only|complete
func (ih *ImagesHandler) Delete(c *gin.Context) {
	mode := strings.TrimSpace(c.DefaultQuery("delete_type", services.DeleteImageOnly))
	if err := ih.images.Delete(c.Request.Context(), c.Param("id"), mode); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}
