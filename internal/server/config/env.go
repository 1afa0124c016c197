package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr        = "BILLED_HTTP_ADDR"
	EnvHealthAddr      = "BILLED_HEALTH_ADDR"
	EnvDatabaseDSN     = "BILLED_DATABASE_DSN"
	EnvSecretKey       = "BILLED_SECRET_KEY"
	EnvTokenValidity   = "BILLED_TOKEN_VALIDITY"
	EnvS3User          = "BILLED_S3_USER"
	EnvS3Password      = "BILLED_S3_PASSWORD"
	EnvS3Bucket        = "BILLED_S3_BUCKET"
	EnvS3Region        = "BILLED_S3_REGION"
	EnvS3Endpoint      = "BILLED_S3_ENDPOINT"
	EnvPresignValidity = "BILLED_PRESIGN_VALIDITY"
	EnvMaxUploadSize   = "BILLED_MAX_UPLOAD_SIZE"
	EnvShutdownTimeout = "BILLED_SHUTDOWN_TIMEOUT"
)

// parseEnv overlays Config with BILLED_* variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over it. Malformed durations or sizes panic.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str(EnvHTTPAddr, &cfg.EndpointAddrHTTP)
	str(EnvHealthAddr, &cfg.EndpointAddrHealth)
	str(EnvDatabaseDSN, &cfg.DatabaseDSN)
	str(EnvSecretKey, &cfg.SecretKey)
	dur(EnvTokenValidity, &cfg.TokenValidityDuration)
	str(EnvS3User, &cfg.S3RootUser)
	str(EnvS3Password, &cfg.S3RootPassword)
	str(EnvS3Bucket, &cfg.S3Bucket)
	str(EnvS3Region, &cfg.S3Region)
	str(EnvS3Endpoint, &cfg.S3BaseEndpoint)
	dur(EnvPresignValidity, &cfg.PresignValidityDuration)
	dur(EnvShutdownTimeout, &cfg.ShutdownTimeout)

	if v, ok := os.LookupEnv(EnvMaxUploadSize); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.MaxUploadSize = n
	}
}
