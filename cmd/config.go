package cmd

import "time"

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	EasyshipAPIKey  string
	EasyshipBaseURL string
	EasyshipUseMock bool
	EasyshipTimeout time.Duration
	QuoteCacheTTL   time.Duration
}
