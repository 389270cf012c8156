package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5MB

var (
	ErrImageFormat   = errors.New("unsupported image format")
	ErrImageTooLarge = errors.New("image is too large")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ImageStore сохраняет загруженные картинки под корнем media
type ImageStore struct {
	root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// SavePostImage сохраняет картинку поста в uploads/posts/
func (s *ImageStore) SavePostImage(ownerNickname string, file *multipart.FileHeader) (string, error) {
	return s.save(filepath.Join("uploads", "posts"), ownerNickname, file)
}

// SaveUserImage сохраняет аватар в uploads/posts/users/
func (s *ImageStore) SaveUserImage(ownerEmail string, file *multipart.FileHeader) (string, error) {
	return s.save(filepath.Join("uploads", "posts", "users"), ownerEmail, file)
}

func (s *ImageStore) save(dir, ownerName string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrImageFormat
	}
	if file.Size > maxImageSize {
		return "", ErrImageTooLarge
	}

	// Имя файла не зависит от клиентского: slug владельца + свежий uuid
	name := Slugify(ownerName) + "-" + uuid.New().String() + ext
	relPath := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fullPath := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return relPath, nil
}

// Remove удаляет ранее сохраненный файл, ошибки игнорируются
func (s *ImageStore) Remove(relPath string) {
	if relPath == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.root, relPath))
}

// Slugify приводит имя к виду, безопасному для файловой системы
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
