// Package config provides configuration management for the traceability service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each setting in `default` struct tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, upload body limit
//   - Database: driver (sqlite or mysql) and connection details
//   - Storage: S3/MinIO archive for uploaded calibration workbooks
//   - Log: logging level and format
//   - Calibration: workbook sheet name and template file name
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
