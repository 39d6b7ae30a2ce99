package config

import "os"

type Config struct {
	Addr      string
	DBDriver  string
	DBURL     string
	PlanPath  string
	PlanSheet string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	return Config{
		Addr:      getEnv("ADDR", ":8000"),
		DBDriver:  getEnv("DB_DRIVER", "mysql"),
		DBURL:     getEnv("DATABASE_URL", "admin:12345678@tcp(127.0.0.1:3306)/pmpdb?charset=utf8mb4&parseTime=True&loc=Local"),
		PlanPath:  getEnv("PLAN_PATH", "data/plan_pmp.xlsx"),
		PlanSheet: getEnv("PLAN_SHEET", "CSD PET3"),
	}
}
