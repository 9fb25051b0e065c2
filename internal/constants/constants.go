// Package constants defines shared constants used across the chaperone codebase.
package constants

import "os"

// File permissions
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// Environment variables
const (
	EnvConfigDir = "CHAPERONE_CONFIG"
	EnvDataDir   = "CHAPERONE_DATA"
)

// Application paths
const (
	AppName         = "chaperone"
	XDGConfigSubdir = ".config"
	XDGDataSubdir   = ".local/share"
	ClaudeConfigDir = ".claude"
	AgentsSubdir    = "agents"
	ConfigFileName  = "config.toml"
	AuditFileName   = "audit.log"
	MetricsFileName = "metrics.json"
)
