package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const UploadDir = "uploads/resources"

// allowedMimeTypes maps resource types to the mime prefixes accepted for upload
var allowedMimeTypes = map[string][]string{
	"video": {"video/"},
	"pdf":   {"application/pdf"},
}

// IsAllowedMimeType reports whether the uploaded content type fits the resource type
func IsAllowedMimeType(resourceType, contentType string) bool {
	prefixes, ok := allowedMimeTypes[resourceType]
	if !ok {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(contentType, p) {
			return true
		}
	}
	return false
}

// SaveUploadedFile stores an uploaded resource under UploadDir with a unique name
func SaveUploadedFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(UploadDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.New().String() + ext
	filePath := filepath.Join(UploadDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}

// DeleteUploadedFile removes a stored resource file, ignoring already-missing files
func DeleteUploadedFile(fileName string) error {
	if fileName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(UploadDir, fileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %v", fileName, err)
	}
	return nil
}

// GetFileURL returns the public URL for a stored resource file
func GetFileURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	return "/uploads/resources/" + fileName
}
