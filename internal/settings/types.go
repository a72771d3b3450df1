package settings

// Settings is the persisted project configuration
// (<project>/.claude/ccconfig.json). Open-ended sections (techStack,
// codeStyle, custom) stay generic maps so projects can add their own keys
// without a schema change.
type Settings struct {
	Project     Project                `json:"project"`
	TechStack   map[string]interface{} `json:"techStack,omitempty"`
	CodeStyle   map[string]interface{} `json:"codeStyle,omitempty"`
	Modules     Modules                `json:"modules"`
	Bundles     []string               `json:"bundles,omitempty"`
	MCPServers  map[string]MCPServer   `json:"mcpServers,omitempty"`
	Permissions *Permissions           `json:"permissions,omitempty"`
	Custom      map[string]interface{} `json:"custom,omitempty"`
}

// Project identifies the project being configured.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Repository  string `json:"repository,omitempty"`
}

// Modules lists the installed template modules per kind.
type Modules struct {
	Agents   []string `json:"agents,omitempty"`
	Commands []string `json:"commands,omitempty"`
	Skills   []string `json:"skills,omitempty"`
	Docs     []string `json:"docs,omitempty"`
}

// MCPServer describes one MCP server entry written into the managed
// settings file.
type MCPServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Permissions holds allow/deny tool patterns.
type Permissions struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// All returns every module reference across kinds, in kind order.
func (m Modules) All() []string {
	out := make([]string, 0, len(m.Agents)+len(m.Commands)+len(m.Skills)+len(m.Docs))
	out = append(out, m.Agents...)
	out = append(out, m.Commands...)
	out = append(out, m.Skills...)
	out = append(out, m.Docs...)
	return out
}
