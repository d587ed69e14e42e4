package services

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupServiceRunBackup(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	// Soft-deleted rentals are still exported
	require.NoError(t, r.DeleteRental(rental.ID))

	t.Setenv("BACKUP_DIR", t.TempDir())
	svc := NewBackupService(db)

	path, err := svc.RunBackup()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export backupExport
	require.NoError(t, json.Unmarshal(data, &export))
	require.Len(t, export.Rentals, 1)
	assert.Equal(t, rental.ID, export.Rentals[0].ID)
	assert.Equal(t, int64(124000), export.Rentals[0].TotalDue)
	assert.False(t, export.ExportedAt.IsZero())
}
