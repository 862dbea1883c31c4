package cartstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
)

// FileStore persists the cart as one JSON blob on device storage. Writes go
// through a temp file plus rename so a reader never observes a partial blob.
type FileStore struct {
	path   string
	logger zerolog.Logger

	mu sync.Mutex
	notifier
}

// NewFile builds a FileStore writing to path.
func NewFile(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Load(_ context.Context) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("cart blob unreadable, treating as empty")
		}
		return []domain.CartLine{}, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("cart blob corrupt, resetting to empty")
		return []domain.CartLine{}, nil
	}
	return lines, nil
}

func (s *FileStore) Save(_ context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	s.mu.Lock()
	if err := s.write(lines); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(lines)
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	return s.Save(ctx, nil)
}

func (s *FileStore) write(lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, Key+"-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
