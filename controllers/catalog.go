package controllers

import (
	"net/http"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	PlanPath  string
	PlanSheet string
}

// Lookups exposes the distinct values the admin forms are built from. The
// workbook is re-read on every call so plan edits show up immediately.
func (cc *CatalogController) Lookups(c *gin.Context) {
	cat, err := catalog.Load(cc.PlanPath, cc.PlanSheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lines":            cat.Lines,
		"machines_by_line": cat.MachinesByLine,
		"role_hints":       cat.RoleHints,
		"frequencies":      cat.Frequencies,
	})
}
