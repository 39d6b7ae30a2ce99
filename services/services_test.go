package services

import (
	"path/filepath"
	"testing"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pmp.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}, &models.KpiSettings{}))
	require.NoError(t, EnsureKpiSettings(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role, line string, machines []string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		ProdLine:     line,
	}
	user.SetMachines(machines)
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedTask(t *testing.T, db *gorm.DB, task models.Task) models.Task {
	t.Helper()

	if task.Status == "" {
		task.Status = constants.TaskStatusOpen
	}
	if task.Points == 0 {
		task.Points = 1
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}
