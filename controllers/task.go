package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/catalog"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/middleware"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskController struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	PlanPath  string
	PlanSheet string
}

// CreateTask is the admin's manual single-task creation. The row is appended
// to the plan workbook first so the catalog keeps covering it, then the task
// is persisted.
func (tc *TaskController) CreateTask(c *gin.Context) {
	var input struct {
		Line        string `json:"line"`
		Machine     string `json:"machine"`
		Description string `json:"description"`
		Frequency   string `json:"frequency"`
		RoleHint    string `json:"role_hint"`
		AssignedTo  uint   `json:"assigned_to"`
		Points      int    `json:"points"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.AssignedTo == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_to is required"})
		return
	}
	if input.Points == 0 {
		input.Points = 1
	}

	err := catalog.AppendRow(tc.PlanPath, tc.PlanSheet, catalog.Row{
		Line:        input.Line,
		Machine:     input.Machine,
		Description: input.Description,
		Frequency:   input.Frequency,
		RoleHint:    input.RoleHint,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		Line:         input.Line,
		Machine:      input.Machine,
		Description:  input.Description,
		AssignedToID: input.AssignedTo,
		Status:       constants.TaskStatusOpen,
		Points:       input.Points,
		Frequency:    input.Frequency,
		CreatedAt:    time.Now(),
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tc.Logger.Info("manual task created",
		zap.Uint("task_id", task.ID),
		zap.String("line", task.Line),
		zap.Uint("assigned_to", task.AssignedToID))

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) GetOpenTasks(c *gin.Context) {
	tasks, err := services.OpenTasks(tc.DB, filtersFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) GetClosedTasks(c *gin.Context) {
	tasks, err := services.ClosedTasks(tc.DB, filtersFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	if err := tc.DB.Delete(&models.Task{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// CloseTask lets the assigned user close their own open task. Anything else
// (wrong owner, unknown id, already closed) is rejected without a state
// change.
func (tc *TaskController) CloseTask(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	if err := services.CloseTask(tc.DB, userID, uint(taskID)); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Action not allowed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tc.Logger.Info("task closed",
		zap.Uint("task_id", uint(taskID)),
		zap.Uint("user_id", userID))

	c.JSON(http.StatusOK, gin.H{"message": "Task closed"})
}

// Me is the operator dashboard: own profile, own tasks (open first) and the
// personal score.
func (tc *TaskController) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	var user models.User
	if err := tc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	tasks, err := services.UserTasks(tc.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	score, err := services.UserScore(tc.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"tasks": tasks,
		"score": score,
	})
}

func filtersFromQuery(c *gin.Context) services.KpiFilters {
	return services.KpiFilters{
		Line:      c.Query("line"),
		Machine:   c.Query("machine"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}
