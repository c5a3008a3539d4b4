package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	original := sampleCollection()

	data, err := ExportBackup(original)
	require.NoError(t, err)

	restored, err := ImportBackup(data)
	require.NoError(t, err)
	require.Equal(t, original, restored)
}

func TestExportBackup_NilCollectionIsEmptyArray(t *testing.T) {
	data, err := ExportBackup(nil)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))
}

func TestImportBackup_RejectsNonArray(t *testing.T) {
	cases := map[string]string{
		"object":  `{"not": "an array"}`,
		"string":  `"lessons"`,
		"garbage": `]]]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ImportBackup([]byte(payload))
			var invalid *ErrInvalidBackupFormat
			require.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestImportBackup_AllOrNothing(t *testing.T) {
	// Second entry has no id: the entire import must fail.
	payload := `[
		{"id": "l1", "title": "ok", "targetAudience": "Kids (10-13 anos)",
		 "activities": [{"time":"19:00","activity":"a","description":"d"}],
		 "classDate": "2026-03-07", "weatherCondition": "Ensolarado",
		 "feedback": {"positive":"","improvement":"","ideas":""},
		 "theme": "", "objectives": "", "nextClassSuggestion": ""},
		{"title": "sem id"}
	]`

	got, err := ImportBackup([]byte(payload))
	var invalid *ErrInvalidBackupFormat
	require.True(t, errors.As(err, &invalid), "got %v", err)
	require.Nil(t, got)
}

func TestImportBackup_RejectsUnknownEnumValue(t *testing.T) {
	payload := `[{"id": "l1", "targetAudience": "Veteranos"}]`
	_, err := ImportBackup([]byte(payload))
	var invalid *ErrInvalidBackupFormat
	require.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestBackupFilename(t *testing.T) {
	now := time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "aulaplan_backup_2026-03-07.json", BackupFilename(now))
}
