// Package config provides configuration management for the report generator.
// It loads configuration from several sources, validates it, and exposes a
// typed struct consumed by the CLI and the report pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Command-line flags (applied by the CLI after Load)
//  2. Environment variables
//  3. A YAML file (hmireport.yaml, configs/hmireport.yaml or --config)
//  4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern HMIREPORT_<SECTION>_<KEY>:
//
//	HMIREPORT_PATHS_DATA_DIR=D:\exports
//	HMIREPORT_PATHS_LOGO_PATH=D:\exports\logo.png
//	HMIREPORT_REPORT_CHART_PLACEMENT=before
//	HMIREPORT_LOGGING_LEVEL=debug
//	HMIREPORT_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/hmireport.prom
//
// # Validation
//
// Every field carries validator tags; Load fails with one message listing
// each offending field.
package config
