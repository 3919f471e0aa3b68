package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("GMP_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("GMP_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("GMP_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/gm-panel"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("GMP_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("GMP_WEB_LISTEN")
}

func GetPort() string {
	port := os.Getenv("GMP_WEB_PORT")
	if port == "" {
		port = "2095"
	}
	return port
}

func GetSessionSecret() string {
	secret := os.Getenv("GMP_SESSION_SECRET")
	if secret == "" {
		secret = GetName()
	}
	return secret
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(os.Getenv("GMP_SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return 60
	}
	return maxAge
}

// GetEventsEndpoint returns the URL of the external events API that receives
// the audit log lines for staff actions.
func GetEventsEndpoint() string {
	endpoint := os.Getenv("GMP_EVENTS_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://www.imperiumao.com.ar/ext/eventsapp.php"
	}
	return endpoint
}

// GetEventsKey returns the shared secret sent as the "ek" parameter on every
// events API call.
func GetEventsKey() string {
	return os.Getenv("GMP_EVENTS_KEY")
}

// GetSystemAccount returns the username of the system account whose actions
// are never reported to the events API.
func GetSystemAccount() string {
	account := os.Getenv("GMP_SYSTEM_ACCOUNT")
	if account == "" {
		account = "admin"
	}
	return account
}
