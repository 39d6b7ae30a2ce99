package main

import (
	"github.com/Maryelmnaouar/PMP-PLATEFORM/config"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/routes"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/services"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		panic("Failed to initialize logger")
	}
	defer logger.Sync()

	cfg := config.Load()
	db := config.ConnectDB(cfg)

	if err := db.AutoMigrate(&models.User{}, &models.Task{}, &models.KpiSettings{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	if err := services.EnsureKpiSettings(db); err != nil {
		logger.Fatal("seeding kpi settings failed", zap.Error(err))
	}

	r := routes.SetupRouter(db, logger, cfg)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
