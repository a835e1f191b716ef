// Package config loads service configuration with viper.
//
// LoadConfig looks for a config.yml next to the service's cmd directory (or
// in the working directory), loads an optional .env file through godotenv
// and lets environment variables override file keys:
//
//	RECALL_API_KEY=... -> recall.api_key
//	SERVER_PORT=9090   -> server.port
package config
