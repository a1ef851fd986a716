package httpapi

import (
	"fmt"
	"net/http"

	"chirp/internal/adapters/storage"
	storagePort "chirp/internal/ports/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// imageField is the multipart field carrying the files; it may repeat
const imageField = "image"

type UploadController struct {
	images storagePort.ImageStorage
	logger *zap.Logger
}

func NewUploadController(images storagePort.ImageStorage, logger *zap.Logger) *UploadController {
	return &UploadController{images: images, logger: logger}
}

// UploadImages stores every uploaded file and answers with the list of
// references to pass as "image" when creating a post.
func (ctl *UploadController) UploadImages(c *gin.Context) {
	if _, ok := actingUser(c); !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}
	files := form.File[imageField]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image uploaded"})
		return
	}
	for _, fh := range files {
		if fh.Size > storage.MaxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s exceeds %d bytes", fh.Filename, storage.MaxImageSize)})
			return
		}
	}

	refs := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			respondError(c, ctl.logger, fmt.Errorf("open upload %s: %w", fh.Filename, err))
			return
		}
		ref, err := ctl.images.Save(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
		f.Close()
		if err != nil {
			respondError(c, ctl.logger, err)
			return
		}
		refs = append(refs, ref)
	}
	ctl.logger.Info("🖼️ stored images", zap.Int("count", len(refs)))
	c.JSON(http.StatusOK, refs)
}
