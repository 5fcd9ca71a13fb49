package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrack/internal/database"
)

func TestSeed_RerunLeavesNoOrphans(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	require.NoError(t, seed(db))
	require.NoError(t, seed(db))

	counts := map[string]int64{
		"users":         3,
		"user_profiles": 3,
		"media":         4,
		"friendships":   2,
		"suggestions":   1,
	}
	for table, want := range counts {
		var got int64
		require.NoError(t, db.Table(table).Count(&got).Error)
		assert.Equal(t, want, got, "table %s", table)
	}

	// every profile belongs to a live user
	var orphans int64
	require.NoError(t, db.Table("user_profiles").
		Where("user_id NOT IN (SELECT id FROM users)").
		Count(&orphans).Error)
	assert.Zero(t, orphans)
}
