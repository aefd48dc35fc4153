package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const uploadDir = "public/uploads"

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// saveUploadedImage stores an uploaded catalog image under a uuid filename
// and returns the stored name. The original filename only contributes its
// extension.
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("unsupported image type")
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	filename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return filename, nil
}

// imageFromForm pulls the optional "image" file out of a multipart form.
// Returns "" when the client sent no image.
func imageFromForm(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No file attached is fine; the model keeps its default image.
		return "", nil
	}
	return saveUploadedImage(c, file)
}
