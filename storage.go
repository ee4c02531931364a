package main

import (
	"errors"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxCoverSize  = 5 * 1024 * 1024
	maxCoverWidth = 1280
)

// errNotImage marks uploads that cannot be decoded as an image. Handlers
// turn it into a client error rather than a server error.
var errNotImage = errors.New("file is not a decodable image")

// uploadBaseDir returns the base directory for stored covers
// (configurable via UPLOAD_BASE env).
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}

// ensureUploadBase creates the base upload directory.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create upload base dir %s: %v", base, err)
	}
}

// storeCover validates the upload as an image, downscales wide covers
// and writes it as cover_<todoID><ext>. Returns the stored filename.
func storeCover(fh *multipart.FileHeader, todoID uuid.UUID) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", errNotImage
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
	default:
		ext = ".jpg"
	}

	if img.Bounds().Dx() > maxCoverWidth {
		img = imaging.Resize(img, maxCoverWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(uploadBaseDir(), 0755); err != nil {
		return "", err
	}
	filename := "cover_" + todoID.String() + ext
	if err := imaging.Save(img, coverPath(filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func coverPath(filename string) string {
	return filepath.Join(uploadBaseDir(), filename)
}

func coverExists(filename string) bool {
	_, err := os.Stat(coverPath(filename))
	return err == nil
}

func deleteCover(filename string) {
	if err := os.Remove(coverPath(filename)); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to delete cover %s: %v", filename, err)
	}
}
