// Package filemgr stores product images under the upload directory. Uploads
// are decoded and re-encoded so nothing but a real image ever lands on disk,
// and each image gets a 300px thumbnail next to it.
package filemgr

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"calyx/config"
	"calyx/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

var ErrInvalidImage = errors.New("invalid image file")

func productDir(productID string) string {
	return filepath.Join(config.Load().UploadDir, "products", productID)
}

// SaveProductImage reads the multipart field named "image" from the request,
// validates and resizes it, and returns the public path of the stored image.
func SaveProductImage(r *http.Request, productID string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", fmt.Errorf("parse multipart form: %w", err)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	if !utils.ValidateImageFileType(header.Filename) {
		return "", ErrInvalidImage
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dir := productDir(productID)
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	// Full size is capped at 800px wide, thumbnails at 300px.
	if img.Bounds().Dx() > 800 {
		img = imaging.Resize(img, 800, 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(dir, "thumb-"+name)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return "/uploads/products/" + productID + "/" + name, nil
}

// RemoveImage deletes a stored image and its thumbnail given the public path
// returned by SaveProductImage. Paths outside the upload tree are rejected.
func RemoveImage(publicPath string) error {
	rel := strings.TrimPrefix(publicPath, "/uploads/")
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return ErrInvalidImage
	}

	full := filepath.Join(config.Load().UploadDir, rel)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	thumb := filepath.Join(filepath.Dir(full), "thumb-"+filepath.Base(full))
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveProductDir drops every stored image for the product.
func RemoveProductDir(productID string) error {
	if productID == "" {
		return ErrInvalidImage
	}
	return os.RemoveAll(productDir(productID))
}
