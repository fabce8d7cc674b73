package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string `json:"listen_addr"`
	DatabaseDSN     string `json:"database_dsn"`
	OperatorAddress string `json:"operator_address"`
	CustodianURL    string `json:"custodian_url"`
	AuditSchedule   string `json:"audit_schedule"`
}

// LoadConfig reads the JSON config file, then applies .env and environment
// variable overrides. The file is optional; environment variables alone can
// carry a full configuration.
func LoadConfig(filePath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		ListenAddr:    ":8080",
		AuditSchedule: "@hourly",
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if v := os.Getenv("POOL_LISTEN_ADDR"); v != "" {
		config.ListenAddr = v
	}
	if v := os.Getenv("POOL_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("POOL_OPERATOR_ADDRESS"); v != "" {
		config.OperatorAddress = v
	}
	if v := os.Getenv("POOL_CUSTODIAN_URL"); v != "" {
		config.CustodianURL = v
	}
	if v := os.Getenv("POOL_AUDIT_SCHEDULE"); v != "" {
		config.AuditSchedule = v
	}
	return config, nil
}
