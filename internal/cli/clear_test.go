package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contexthub/internal/database"
	"contexthub/internal/models"
	"contexthub/internal/services"
)

func TestClearCommand_AllSentinelIsCaseInsensitive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "contexthub_test.db")
	projectDir := t.TempDir()
	ctx := context.Background()

	db, err := database.Init(database.Config{Path: dbPath})
	require.NoError(t, err)
	svc := services.NewServices(db, nil, zap.NewNop())
	_, err = svc.Sessions.GetOrCreateSession(ctx, "gemini", projectDir, true)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// "ALL" must mean every provider, not a provider literally named ALL.
	rootCmd.SetArgs([]string{"clear", "--ai", "ALL", "--yes", "--project", projectDir, "--db", dbPath})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.ExecuteContext(ctx))

	db, err = database.Init(database.Config{Path: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	svc = services.NewServices(db, nil, zap.NewNop())

	sess, err := svc.Sessions.GetOrCreateSession(ctx, "gemini", projectDir, false)
	require.NoError(t, err)
	assert.Nil(t, sess, "the gemini session must be cleared")

	var events int64
	require.NoError(t, db.Model(&models.ClearEvent{}).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}
