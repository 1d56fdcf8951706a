// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win, later sources only fill fields still empty):
//  1. Command-line flags
//  2. Environment variables, optionally extended from a dotenv file
//     named by the -env flag
//  3. Built-in defaults
//
// The main entry point is [GetConfig], which runs all sources through the
// internal builder and validates the merged result.
package config
