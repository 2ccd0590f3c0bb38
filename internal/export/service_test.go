package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/export"
)

type staticSource []expense.Expense

func (s staticSource) List() expense.Snapshot {
	return expense.Snapshot{Version: 1, Expenses: s}
}

var (
	at      = time.Date(2024, time.March, 15, 9, 30, 0, 123_000_000, time.UTC)
	entries = staticSource{
		{ID: "1", Title: "Lunch", Amount: 12.5, Category: "Food & Dining", Date: expense.NewDate(2024, time.March, 14)},
	}
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func TestService_Backup(t *testing.T) {
	svc := export.NewService(entries, discard)

	b := svc.Backup(at)

	assert.Equal(t, "1.0", b.Version)
	assert.Equal(t, "2024-03-15T09:30:00.123Z", b.ExportDate)
	assert.Equal(t, []expense.Expense(entries), b.Expenses)
}

func TestService_Backup_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	svc := export.NewService(staticSource{}, discard)

	b := svc.Backup(time.Date(2024, time.March, 15, 22, 0, 0, 0, loc))

	assert.Equal(t, "2024-03-16T03:00:00.000Z", b.ExportDate)
	assert.NotNil(t, b.Expenses)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.Write(&buf, export.NewService(entries, discard).Backup(at)))

	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"expenses\": [\n    {"), buf.String())
	assert.JSONEq(t, `{
		"expenses": [{"id":"1","title":"Lunch","amount":12.5,"category":"Food & Dining","date":"2024-03-14"}],
		"exportDate": "2024-03-15T09:30:00.123Z",
		"version": "1.0"
	}`, buf.String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "smartexpense-backup-2024-03-15.json", export.Filename(at))
}

func TestService_ExportToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	svc := export.NewService(entries, discard)

	path, err := svc.ExportToDir(context.Background(), dir, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "smartexpense-backup-2024-03-15.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got export.Backup
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "1.0", got.Version)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, "Lunch", got.Expenses[0].Title)
}

func TestService_ExportToDir_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := export.NewService(entries, discard).ExportToDir(ctx, t.TempDir(), at)
	assert.ErrorIs(t, err, context.Canceled)
}
