package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/usersdb/usersdb/types"
)

const exportPrefix = "exports/"

// ObjectWriter is the part of an object store exports need.
type ObjectWriter interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Bucket() string
}

// UserExport is the document written for each export run.
type UserExport struct {
	ExportedAt time.Time    `json:"exported_at"`
	State      string       `json:"state"`
	Count      int          `json:"count"`
	Users      []types.User `json:"users"`
}

// ExportResult locates a finished export.
type ExportResult struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Count  int    `json:"count"`
}

// ExportService snapshots users into an object store as JSON.
type ExportService struct {
	repo    UserRepository
	objects ObjectWriter
	log     zerolog.Logger
	now     func() time.Time
}

func NewExportService(repo UserRepository, objects ObjectWriter, log zerolog.Logger) *ExportService {
	return &ExportService{
		repo:    repo,
		objects: objects,
		log:     log.With().Str("component", "export_service").Logger(),
		now:     time.Now,
	}
}

// ExportActiveUsers writes every active user to
// exports/active-users-<UTC timestamp>.json.
func (s *ExportService) ExportActiveUsers(ctx context.Context) (ExportResult, error) {
	users, err := s.repo.ListByState(ctx, types.UserStateActive)
	if err != nil {
		return ExportResult{}, err
	}

	at := s.now().UTC()
	data, err := json.Marshal(UserExport{
		ExportedAt: at,
		State:      types.UserStateActive.String(),
		Count:      len(users),
		Users:      users,
	})
	if err != nil {
		return ExportResult{}, err
	}

	key := fmt.Sprintf("%sactive-users-%s.json", exportPrefix, at.Format("20060102T150405Z"))
	if err := s.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return ExportResult{}, fmt.Errorf("upload %s: %w", key, err)
	}

	s.log.Info().
		Str("bucket", s.objects.Bucket()).
		Str("key", key).
		Int("count", len(users)).
		Msg("exported active users")

	return ExportResult{Bucket: s.objects.Bucket(), Key: key, Count: len(users)}, nil
}
