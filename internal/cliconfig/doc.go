// Package cliconfig provides configuration types and loading for the restapi CLI.
//
// It implements a layered configuration system with the following precedence
// (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (RESTAPI_* prefix)
//  3. Config file (--config, RESTAPI_CONFIG, or .restapirc.yaml in the
//     current directory)
//  4. Default values
//
// It tracks the source of each configuration value for debugging purposes.
package cliconfig
