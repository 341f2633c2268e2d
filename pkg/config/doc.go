// Package config loads and validates textdlg documents: the global
// Configuration and dialog Scripts.
package config

//go:generate go run ../../internal/schemagen -o ../../schemas
