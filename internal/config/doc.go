// Package config provides centralized configuration management.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones
// overriding earlier ones:
//
//	1. Default values (Default)
//	2. YAML file (config.yaml or configs/config.yaml, in the working
//	   directory or next to the executable)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables use the INDICADORES_ prefix followed by the
// section and field name:
//
//	INDICADORES_SERVER_PORT=8080
//	INDICADORES_DATA_FILE=/srv/indicadores/indicadores_grupo_linhares.xlsx
//	INDICADORES_DATA_WATCH=true
//	INDICADORES_DATA_COLUMNS_DEVELOPER=Dev
//	INDICADORES_LOGGING_LEVEL=debug
//
// # Path Management
//
// Relative paths (data file, log file) are resolved against the directory
// of the executable, so the service finds its spreadsheet regardless of
// the working directory it was started from.
//
// # Validation
//
// Load validates the result with go-playground/validator struct tags and
// fails fast on out-of-range values.
package config
