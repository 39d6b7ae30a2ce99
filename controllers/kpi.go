package controllers

import (
	"net/http"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type KpiController struct {
	DB *gorm.DB
}

func (kc *KpiController) Dashboard(c *gin.Context) {
	result, err := services.ComputeKpis(kc.DB, filtersFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (kc *KpiController) GetSettings(c *gin.Context) {
	cfg, err := services.GetKpiSettings(kc.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (kc *KpiController) UpdateSettings(c *gin.Context) {
	var input struct {
		RateOffset  int `json:"rate_offset"`
		ScoreOffset int `json:"score_offset"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateKpiSettings(kc.DB, input.RateOffset, input.ScoreOffset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "KPI settings updated"})
}
