package defs

import "io/fs"

// Well-known file names inside a Claude Code configuration directory.
const (
	// SettingsJSON is the Claude Code settings file that receives converted hooks.
	SettingsJSON = "settings.json"

	// MCPJSON is the MCP server configuration file in the destination directory.
	MCPJSON = ".mcp.json"

	// InstallConfigYAML is the optional install-defaults file read from the
	// destination directory.
	InstallConfigYAML = "ecc.yaml"
)

// Well-known paths inside the asset source tree.
const (
	// HooksDescriptor is the legacy hooks document, relative to the source root.
	HooksDescriptor = "hooks/hooks.json"

	// MCPDescriptor is the MCP server descriptor, relative to the source root.
	MCPDescriptor = "mcp-configs/mcp-servers.json"
)

// FilterScriptDir is the destination subdirectory (relative to the config
// directory) that receives generated hook filter scripts.
const FilterScriptDir = "hooks/filters"

// File and directory permissions for installed assets.
const (
	// FilePerm is the default permission for installed files.
	FilePerm fs.FileMode = 0o644

	// ExecPerm is the permission for generated filter scripts.
	ExecPerm fs.FileMode = 0o755

	// DirPerm is the permission for created directories.
	DirPerm fs.FileMode = 0o755
)

// DefaultSourceRepo is the asset repository cloned when no --source is given.
const DefaultSourceRepo = "https://github.com/yuezheng2006/everything-claude-code.git"
