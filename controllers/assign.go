package controllers

import (
	"net/http"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/catalog"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssignController struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	PlanPath  string
	PlanSheet string
}

func (ac *AssignController) AssignWeekly(c *gin.Context) {
	ac.assign(c, services.WeeklyFilter, services.WeeklyOffset)
}

func (ac *AssignController) AssignMonthly(c *gin.Context) {
	ac.assign(c, services.MonthlyFilter, services.MonthlyOffset)
}

func (ac *AssignController) assign(c *gin.Context, freqFilter string, offset int) {
	var input struct {
		Line string `json:"line"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := catalog.Load(ac.PlanPath, ac.PlanSheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := services.AutoAssign(ac.DB, cat, input.Line, freqFilter, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ac.Logger.Info("auto assignment finished",
		zap.String("line", input.Line),
		zap.String("frequency", freqFilter),
		zap.Int("created", created))

	c.JSON(http.StatusOK, gin.H{"created": created})
}
