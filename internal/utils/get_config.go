package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	Port         string `yaml:"PORT"`
	LogFile      string `yaml:"LOG_FILE"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`
	CORSOrigins  string `yaml:"CORS_ALLOW_ORIGINS"`

	// Database configuration
	DBDriver  string `yaml:"DB_DRIVER"`
	MongoURI  string `yaml:"MONGO_URI"`
	DBUser    string `yaml:"DB_USER"`
	DBKey     string `yaml:"DB_KEY"`
	DBCluster string `yaml:"DB_CLUSTER"`
	DBAppName string `yaml:"DB_APP_NAME"`
	DBName    string `yaml:"DB_NAME"`
	DBTimeout string `yaml:"DB_TIMEOUT"`

	// JWT configuration
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

var defaults = map[string]string{
	"PORT":               "3000",
	"LOG_FILE":           "./logs/app.log",
	"RATE_LIMIT_MAX":     "100",
	"CORS_ALLOW_ORIGINS": "*",
	"DB_DRIVER":          "mongo",
	"DB_CLUSTER":         "cluster0.gkupt.mongodb.net",
	"DB_APP_NAME":        "Cluster0",
	"DB_NAME":            "Foodbank",
	"DB_TIMEOUT":         "10s",
	"JWT_ISSUER":         "FOODBANK",
	"SMTP_PORT":          "587",
}

// LoadConfig reads config.yaml, or the file named by CONFIG_PATH. A missing
// file is not an error; every key then falls back to the environment.
func LoadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if err := loadConfigFile(path); err != nil {
		log.Printf("Error reading config file %s: %s\n", path, err)
	}
}

func loadConfigFile(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var parsed Config
	if err := yaml.Unmarshal(file, &parsed); err != nil {
		return err
	}
	config = parsed
	return nil
}

// GetConfig resolves key from the config file, then the environment, then
// the built-in default.
func GetConfig(key string) string {
	if v := fileValue(key); v != "" {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetIntConfig(key string) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		fallback, _ := strconv.Atoi(defaults[key])
		return fallback
	}
	return v
}

func GetDurationConfig(key string) time.Duration {
	v, err := time.ParseDuration(GetConfig(key))
	if err != nil {
		fallback, _ := time.ParseDuration(defaults[key])
		return fallback
	}
	return v
}

func fileValue(key string) string {
	switch key {
	case "PORT":
		return config.Port
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "CORS_ALLOW_ORIGINS":
		return config.CORSOrigins
	case "DB_DRIVER":
		return config.DBDriver
	case "MONGO_URI":
		return config.MongoURI
	case "DB_USER":
		return config.DBUser
	case "DB_KEY":
		return config.DBKey
	case "DB_CLUSTER":
		return config.DBCluster
	case "DB_APP_NAME":
		return config.DBAppName
	case "DB_NAME":
		return config.DBName
	case "DB_TIMEOUT":
		return config.DBTimeout
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
