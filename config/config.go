package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"nutritrack/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port   string
	AppEnv string

	JWTSecret   string
	AdminEmails []string

	// DBDriver is "postgres" (default) or "sqlite"; sqlite uses DBPath.
	DBDriver   string
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// RedisAddr enables the shared per-user lock for multi-replica deployments.
	RedisAddr string

	AWSRegion      string
	S3Bucket       string
	CloudFrontURL  string
	SESEmail       string
	SNSPlatformARN string
	Rekognition    bool

	CatalogCacheSize int
}

// Load reads the environment, after loading .env when one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	return Config{
		Port:             firstNonEmpty(os.Getenv("PORT"), "8080"),
		AppEnv:           firstNonEmpty(os.Getenv("APP_ENV"), "development"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminEmails:      splitList(os.Getenv("ADMIN_EMAILS")),
		DBDriver:         strings.ToLower(firstNonEmpty(os.Getenv("DB_DRIVER"), "postgres")),
		DBPath:           firstNonEmpty(os.Getenv("DB_PATH"), "nutritrack.db"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           firstNonEmpty(os.Getenv("DB_PORT"), "5432"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		AWSRegion:        firstNonEmpty(os.Getenv("AWS_REGION"), "ap-south-1"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		CloudFrontURL:    os.Getenv("CLOUDFRONT_URL"),
		SESEmail:         os.Getenv("SES_EMAIL"),
		SNSPlatformARN:   os.Getenv("SNS_PLATFORM_ARN"),
		Rekognition:      envBool("REKOGNITION_ENABLED"),
		CatalogCacheSize: envInt("CATALOG_CACHE_SIZE", 128),
	}
}

// UseDatabase is false when neither DB_HOST nor DB_DRIVER=sqlite is set; the
// API then runs on the in-memory store.
func (c Config) UseDatabase() bool { return c.DBHost != "" || c.DBDriver == "sqlite" }

func (c Config) dialector() gorm.Dialector {
	if c.DBDriver == "sqlite" {
		return sqlite.Open(c.DBPath)
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
	)
	return postgres.Open(dsn)
}

func InitDB(cfg Config) *gorm.DB {
	db, err := OpenDB(cfg.dialector())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

// OpenDB connects and migrates every persisted model.
func OpenDB(d gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.UserMeal{},
		&models.Habit{},
		&models.Goal{},
		&models.Challenge{},
		&models.Alert{},
		&models.UserDevice{},
	)
	if err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}
