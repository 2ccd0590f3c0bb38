package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
)

// FormatVersion is written into every backup.
const FormatVersion = "1.0"

const isoMillis = "2006-01-02T15:04:05.000Z"

// Backup is the document written by an export.
type Backup struct {
	Expenses   []expense.Expense `json:"expenses"`
	ExportDate string            `json:"exportDate"`
	Version    string            `json:"version"`
}

// Source provides the snapshot to export.
type Source interface {
	List() expense.Snapshot
}

// Service builds and writes backups of the expense list.
type Service struct {
	source Source
	logger *slog.Logger
}

func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger.With("component", "export")}
}

// Backup captures the current snapshot, stamped with now.
func (s *Service) Backup(now time.Time) Backup {
	return Backup{
		Expenses:   s.source.List().Expenses,
		ExportDate: now.UTC().Format(isoMillis),
		Version:    FormatVersion,
	}
}

// Write renders b as JSON indented with two spaces.
func Write(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	return nil
}

// Filename is the suggested file name for a backup taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("smartexpense-backup-%s.json", now.UTC().Format(time.DateOnly))
}

// ExportToDir writes a backup into dir, creating it if needed, and returns the file path.
// An existing backup from the same day is replaced.
func (s *Service) ExportToDir(ctx context.Context, dir string, now time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	b := s.Backup(now)
	path := filepath.Join(dir, Filename(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := Write(f, b); err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	s.logger.Info("backup written", "path", path, "expenses", len(b.Expenses))

	return path, nil
}
