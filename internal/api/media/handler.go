package media

import (
	"net/http"

	"redacao-app/database"
	"redacao-app/internal/domain/media"

	"github.com/gin-gonic/gin"
)

type fileView struct {
	media.File
	URL string `json:"url"`
}

// POST /admin/files: records an object already placed in storage so it
// can be attached to themes, materials and exams by path.
func RegisterFile(c *gin.Context) {
	var body struct {
		Path        string `json:"path" binding:"required"`
		ContentType string `json:"content_type"`
		SizeBytes   int64  `json:"size_bytes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f := media.File{
		Path:        body.Path,
		ContentType: body.ContentType,
		SizeBytes:   body.SizeBytes,
	}
	if err := database.DB.Create(&f).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register file"})
		return
	}

	c.JSON(http.StatusCreated, fileView{File: f, URL: media.PublicURL(f.Path)})
}

// GET /admin/files
func ListFiles(c *gin.Context) {
	var list []media.File
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load files"})
		return
	}

	out := make([]fileView, 0, len(list))
	for _, f := range list {
		out = append(out, fileView{File: f, URL: media.PublicURL(f.Path)})
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /admin/files/:id: forgets the record only; the stored object is
// cleaned up out of band.
func DeleteFile(c *gin.Context) {
	var f media.File
	if err := database.DB.First(&f, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := database.DB.Delete(&f).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
