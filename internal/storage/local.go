package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mechgenz/mechgenz-backend/internal/platform/envutil"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type localStore struct {
	dir        string
	publicBase string
	log        *logger.Logger
}

func NewLocalStoreFromEnv(log *logger.Logger) (FileStore, error) {
	dir := envutil.String("UPLOADS_DIR", "uploads")
	publicBase := envutil.String("PUBLIC_BASE_URL", "")
	return NewLocalStore(log, dir, publicBase)
}

func NewLocalStore(log *logger.Logger, dir, publicBase string) (FileStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}
	return &localStore{
		dir:        dir,
		publicBase: strings.TrimRight(strings.TrimSpace(publicBase), "/"),
		log:        log.With("store", "LocalFileStore"),
	}, nil
}

func (s *localStore) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storedName := uniqueName(originalName)
	path := filepath.Join(s.dir, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", storedName, err)
	}

	s.log.Debug("File stored", "stored_name", storedName, "size", len(data))
	return storedName, nil
}

func (s *localStore) Path(storedName string) (string, error) {
	clean := filepath.Base(strings.TrimSpace(storedName))
	if clean == "" || clean == "." || clean != storedName {
		return "", ErrNotFound
	}
	path := filepath.Join(s.dir, clean)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return path, nil
}

func (s *localStore) Delete(storedName string) error {
	path, err := s.Path(storedName)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *localStore) PublicURL(storedName string) string {
	return s.publicBase + "/uploads/" + storedName
}

func (s *localStore) Dir() string { return s.dir }

// uniqueName keeps the original extension and a readable stem while
// guaranteeing no collisions between uploads of the same filename.
func uniqueName(originalName string) string {
	base := filepath.Base(strings.TrimSpace(originalName))
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	stem = sanitizeStem(stem)
	if stem == "" {
		stem = "file"
	}
	if len(stem) > 60 {
		stem = stem[:60]
	}

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return stem + "_" + suffix + ext
}

func sanitizeStem(stem string) string {
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
