package handlers

import (
	"errors"
	"net/http"

	"configurator/internal/media"

	"github.com/gin-gonic/gin"
)

// photoField is the multipart field uploads are read from.
const photoField = "photo"

// savePhoto stores the uploaded photo and returns its public URL. When it
// returns false a response has already been written.
func savePhoto(c *gin.Context, storage *media.Storage) (string, bool) {
	fh, err := c.FormFile(photoField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo file provided"})
		return "", false
	}

	url, err := storage.SaveFile(fh)
	switch {
	case err == nil:
		return url, true
	case errors.Is(err, media.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, media.ErrNotImage), errors.Is(err, media.ErrEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
	}
	return "", false
}
