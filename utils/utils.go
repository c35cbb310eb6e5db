package utils

import (
	rndm "math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// --- Random String Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// --- Image Validation ---

var SupportedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ValidateImageFileType checks the file extension against the supported
// image formats. Callers decode the upload anyway; this is the cheap
// pre-check on the name alone.
func ValidateImageFileType(filename string) bool {
	return SupportedImageTypes[strings.ToLower(filepath.Ext(filename))]
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SplitTags takes a comma-separated string and returns a cleaned []string
func SplitTags(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	var tags []string
	seen := make(map[string]bool)

	for _, p := range parts {
		tag := strings.TrimSpace(strings.ToLower(p))
		if tag == "" || seen[tag] {
			continue
		}
		tags = append(tags, tag)
		seen[tag] = true
	}
	return tags
}

// CleanHTML strips tags from admin-entered text fields.
var tagRe = regexp.MustCompile(`<[^>]*>`)

func CleanHTML(input string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(input, ""))
}

// SanitizeFilename replaces anything outside [word . -] with underscores.
func SanitizeFilename(name string) string {
	re := regexp.MustCompile(`[^\w.\-]`)
	clean := re.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}
