package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/billed/internal/flagx"
	"github.com/dmitrijs2005/billed/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// Only the keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrHealth      *string         `json:"endpoint_addr_health"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	TokenValidityDuration   *timex.Duration `json:"token_validity_duration"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	PresignValidityDuration *timex.Duration `json:"presign_validity_duration"`
	MaxUploadSize           *int64          `json:"max_upload_size"`
	ShutdownTimeout         *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Without the flag nothing is loaded. If the file cannot
// be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrHealth, c.EndpointAddrHealth)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.PresignValidityDuration != nil {
		config.PresignValidityDuration = c.PresignValidityDuration.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
