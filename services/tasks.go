package services

import (
	"errors"
	"time"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"

	"gorm.io/gorm"
)

// ErrForbidden covers every rejected action: closing a task you do not own,
// closing an already-closed task, deleting an admin account.
var ErrForbidden = errors.New("forbidden action")

// CloseTask marks the task closed on behalf of userID. The ownership and
// open-status checks happen inside a single conditional UPDATE so two
// concurrent close attempts cannot both succeed; a second close of the same
// task is rejected.
func CloseTask(db *gorm.DB, userID, taskID uint) error {
	now := time.Now()
	res := db.Model(&models.Task{}).
		Where("id = ? AND assigned_to = ? AND status = ?", taskID, userID, constants.TaskStatusOpen).
		Updates(map[string]interface{}{
			"status":    constants.TaskStatusClosed,
			"closed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrForbidden
	}
	return nil
}

// TaskWithUser is a task row joined with its assignee's username for the
// admin listings.
type TaskWithUser struct {
	models.Task
	Username string `json:"username"`
}

// OpenTasks lists open tasks newest first. Date bounds apply to created_at.
func OpenTasks(db *gorm.DB, f KpiFilters) ([]TaskWithUser, error) {
	q := db.Model(&models.Task{}).
		Select("tasks.*, users.username").
		Joins("JOIN users ON users.id = tasks.assigned_to").
		Where("tasks.status = ?", constants.TaskStatusOpen)
	if f.Line != "" {
		q = q.Where("tasks.line = ?", f.Line)
	}
	if f.Machine != "" {
		q = q.Where("tasks.machine = ?", f.Machine)
	}
	if f.StartDate != "" {
		q = q.Where("DATE(tasks.created_at) >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("DATE(tasks.created_at) <= ?", f.EndDate)
	}

	var tasks []TaskWithUser
	if err := q.Order("tasks.created_at DESC").Scan(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ClosedTasks lists closed tasks, most recently closed first. Unlike
// OpenTasks the date bounds apply to closed_at; the two views deliberately
// stay separate query paths.
func ClosedTasks(db *gorm.DB, f KpiFilters) ([]TaskWithUser, error) {
	q := db.Model(&models.Task{}).
		Select("tasks.*, users.username").
		Joins("JOIN users ON users.id = tasks.assigned_to").
		Where("tasks.status = ?", constants.TaskStatusClosed)
	if f.Line != "" {
		q = q.Where("tasks.line = ?", f.Line)
	}
	if f.Machine != "" {
		q = q.Where("tasks.machine = ?", f.Machine)
	}
	if f.StartDate != "" {
		q = q.Where("DATE(tasks.closed_at) >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("DATE(tasks.closed_at) <= ?", f.EndDate)
	}

	var tasks []TaskWithUser
	if err := q.Order("tasks.closed_at DESC").Scan(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UserTasks lists a user's tasks, open ones first, newest first within each
// status.
func UserTasks(db *gorm.DB, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := db.
		Where("assigned_to = ?", userID).
		Order("CASE status WHEN 'open' THEN 0 ELSE 1 END").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// UserScore sums the points of a user's closed tasks.
func UserScore(db *gorm.DB, userID uint) (int, error) {
	var score int
	err := db.Model(&models.Task{}).
		Where("assigned_to = ? AND status = ?", userID, constants.TaskStatusClosed).
		Select("COALESCE(SUM(points), 0)").
		Scan(&score).Error
	return score, err
}
