package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

const (
	appNameVar          = "APP_NAME"
	environmentVar      = "ENV"
	authURLVar          = "AUTH_URL"
	patientsURLVar      = "PATIENTS_URL"
	employeesURLVar     = "EMPLOYEES_URL"
	refreshIntervalVar  = "TOKEN_REFRESH_INTERVAL"
	credentialsFileVar  = "CREDENTIALS_FILE"
	credentialsKeyVar   = "CREDENTIALS_KEY"
	defaultRefreshTick  = 60 * time.Second
	defaultCredsDirName = ".sancommitto"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ EndpointConfig = EnvVars{}
var _ SessionConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "San Committo")
}

func (EnvVars) GetEnv() string {
	return GetEnv(environmentVar, "development")
}

func (EnvVars) GetAuthURL() string {
	return GetEnv(authURLVar, "")
}

func (EnvVars) GetPatientsURL() string {
	return GetEnv(patientsURLVar, "")
}

// GetEmployeesURL returns the employee-side endpoint. The emergency ward
// services are served from the same deployment, so they share this URL.
func (EnvVars) GetEmployeesURL() string {
	return GetEnv(employeesURLVar, "")
}

// GetRefreshInterval returns the background token refresh cadence.
// Defaults to 60s; values must parse as a Go duration ("30s", "2m").
func (EnvVars) GetRefreshInterval() time.Duration {
	v := GetEnv(refreshIntervalVar, "")
	if v == "" {
		return defaultRefreshTick
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultRefreshTick
	}
	return d
}

func (EnvVars) GetCredentialsFile() string {
	if v := GetEnv(credentialsFileVar, ""); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, defaultCredsDirName, "credentials.json")
}

// GetCredentialsKey returns the hex-decoded key for the encrypted
// credential file, or nil when the store should stay plaintext.
func (EnvVars) GetCredentialsKey() []byte {
	v := GetEnv(credentialsKeyVar, "")
	if v == "" {
		return nil
	}
	key, err := hex.DecodeString(v)
	if err != nil {
		return nil
	}
	return key
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
