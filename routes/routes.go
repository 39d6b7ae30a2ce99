package routes

import (
	"github.com/Maryelmnaouar/PMP-PLATEFORM/config"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/controllers"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, logger *zap.Logger, cfg config.Config) *gin.Engine {
	r := gin.Default()

	authController := controllers.AuthController{DB: db}
	userController := controllers.UserController{DB: db}
	taskController := controllers.TaskController{DB: db, Logger: logger, PlanPath: cfg.PlanPath, PlanSheet: cfg.PlanSheet}
	assignController := controllers.AssignController{DB: db, Logger: logger, PlanPath: cfg.PlanPath, PlanSheet: cfg.PlanSheet}
	kpiController := controllers.KpiController{DB: db}
	catalogController := controllers.CatalogController{PlanPath: cfg.PlanPath, PlanSheet: cfg.PlanSheet}

	r.POST("/login", authController.Login)

	authed := r.Group("", middleware.AuthMiddleware())
	authed.GET("/me", taskController.Me)
	authed.POST("/me/tasks/:id/close", taskController.CloseTask)
	authed.GET("/kpi", kpiController.Dashboard)

	admin := r.Group("/admin", middleware.AuthMiddleware(), middleware.RoleMiddleware(constants.RoleAdmin))
	admin.GET("/catalog", catalogController.Lookups)

	admin.POST("/users", userController.CreateUser)
	admin.GET("/users", userController.GetUsers)
	admin.DELETE("/users/:id", userController.DeleteUser)
	admin.PUT("/users/:id/password", userController.ChangePassword)

	admin.POST("/assign/weekly", assignController.AssignWeekly)
	admin.POST("/assign/monthly", assignController.AssignMonthly)

	admin.POST("/tasks", taskController.CreateTask)
	admin.GET("/tasks/open", taskController.GetOpenTasks)
	admin.GET("/tasks/closed", taskController.GetClosedTasks)
	admin.DELETE("/tasks/:id", taskController.DeleteTask)

	admin.GET("/kpi/settings", kpiController.GetSettings)
	admin.PUT("/kpi/settings", kpiController.UpdateSettings)

	return r
}
