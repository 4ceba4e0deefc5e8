package config

import (
	"os"
	"strconv"
)

type envConfig struct {
	LogLevel           string
	ServerPort         int
	Version            string
	BaseURL            string
	Email              string
	Password           string
	ExceptionDays      string
	HolidayEndpoint    string
	HolidayCountry     string
	HTTPTimeoutSeconds int
	ReportFileLocation string
	EmailTo            string
	EmailFrom          string
	AWSRegion          string
}

func NewEnvironmentConfig() *envConfig {
	return &envConfig{
		LogLevel:           getEnvString("LOG_LEVEL", "INFO"),
		ServerPort:         getEnvInt("SERVER_PORT", 8080),
		Version:            getEnvString("VERSION", "v1"),
		BaseURL:            getEnvString("NANOWATCH_BASE_URL", "https://app.nanowatch.org"),
		Email:              getEnvString("NANOWATCH_EMAIL", ""),
		Password:           getEnvString("NANOWATCH_PASSWORD", ""),
		ExceptionDays:      getEnvString("EXCEPTION_DAYS", ""),
		HolidayEndpoint:    getEnvString("HOLIDAY_ENDPOINT", "https://date.nager.at"),
		HolidayCountry:     getEnvString("HOLIDAY_COUNTRY", "IR"),
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
		ReportFileLocation: getEnvString("REPORT_FILE_LOCATION", "/tmp/attendance-report.xlsx"),
		EmailTo:            getEnvString("EMAIL_TO", ""),
		EmailFrom:          getEnvString("EMAIL_FROM", ""),
		AWSRegion:          getEnvString("AWS_REGION", "ap-southeast-2"),
	}
}

// helper function to read an environment or return a default value
func getEnvString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

// helper function to read an environment or return a default value
func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnvString(key, strconv.Itoa(defaultVal)))
	if err == nil {
		return val
	}

	return defaultVal
}
