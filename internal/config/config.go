package config

import "time"

type Config interface {
	EnvConfig
	EndpointConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
}

type EndpointConfig interface {
	GetAuthURL() string
	GetPatientsURL() string
	GetEmployeesURL() string
}

type SessionConfig interface {
	GetRefreshInterval() time.Duration
	GetCredentialsFile() string
	GetCredentialsKey() []byte
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
