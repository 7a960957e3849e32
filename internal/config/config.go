package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	AppId       string

	// Attendance source database (Postgres)
	PostgresDSN string

	// Ops store for sync run history and log sink
	MongoURI string
	DBName   string

	// Destination sheet
	SheetID      string
	SheetToken   string
	SheetBaseURL string

	// Source filter, fixed per deployment
	CompanyCode    string
	DepartmentCode string

	// Scheduling / display
	Timezone  string
	Schedules []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AppId:          getEnv("APP_ID", "attendance-sync"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=attendance sslmode=disable"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "attendance-sync"),
		SheetID:        getEnv("SMARTSHEET_SHEET_ID", ""),
		SheetToken:     getEnv("SMARTSHEET_TOKEN", ""),
		SheetBaseURL:   getEnv("SMARTSHEET_BASE_URL", "https://api.smartsheet.com/2.0"),
		CompanyCode:    getEnv("COMPANY_CODE", "SEL"),
		DepartmentCode: getEnv("DEPARTMENT_CODE", "CRP"),
		Timezone:       getEnv("SYNC_TIMEZONE", "Asia/Kolkata"),
		Schedules:      getEnvList("SYNC_SCHEDULES", "0 10 * * *,0 22 * * *"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
