// Package config loads service configuration from QUICKSEARCH_*
// environment variables with sensible defaults and validation.
package config
