package settings

import (
	"sort"

	"github.com/qazuor/claude-code-config-sub001/internal/template"
)

// BuildContext converts settings into the engine's render context. It is
// built once per CLI run and shared, read-only, across every file render.
// Known sections keep declaration order; open maps (techStack, codeStyle,
// custom, mcpServers) convert with sorted keys so renders are
// deterministic.
func BuildContext(s *Settings) *template.Context {
	root := template.NewMap()

	root.Set("project", template.MapValue(template.NewMap().
		Set("name", template.String(s.Project.Name)).
		Set("description", template.String(s.Project.Description)).
		Set("version", template.String(s.Project.Version)).
		Set("repository", template.String(s.Project.Repository))))

	root.Set("techStack", template.FromAny(anyMap(s.TechStack)))
	root.Set("codeStyle", template.FromAny(anyMap(s.CodeStyle)))

	root.Set("modules", template.MapValue(template.NewMap().
		Set("agents", stringList(s.Modules.Agents)).
		Set("commands", stringList(s.Modules.Commands)).
		Set("skills", stringList(s.Modules.Skills)).
		Set("docs", stringList(s.Modules.Docs))))

	root.Set("bundles", stringList(s.Bundles))
	root.Set("mcpServers", mcpServerMap(s.MCPServers))

	perms := template.NewMap()
	if s.Permissions != nil {
		perms.Set("allow", stringList(s.Permissions.Allow))
		perms.Set("deny", stringList(s.Permissions.Deny))
	}
	root.Set("permissions", template.MapValue(perms))

	root.Set("custom", template.FromAny(anyMap(s.Custom)))

	return template.NewContext(root)
}

func stringList(items []string) template.Value {
	elems := make([]template.Value, len(items))
	for i, s := range items {
		elems[i] = template.String(s)
	}
	return template.List(elems...)
}

// anyMap keeps FromAny from turning a nil map into null; sections should
// always resolve, just emptily.
func anyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func mcpServerMap(servers map[string]MCPServer) template.Value {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := template.NewMap()
	for _, name := range names {
		srv := servers[name]
		envKeys := make([]string, 0, len(srv.Env))
		for k := range srv.Env {
			envKeys = append(envKeys, k)
		}
		sort.Strings(envKeys)
		env := template.NewMap()
		for _, k := range envKeys {
			env.Set(k, template.String(srv.Env[k]))
		}

		out.Set(name, template.MapValue(template.NewMap().
			Set("command", template.String(srv.Command)).
			Set("args", stringList(srv.Args)).
			Set("env", template.MapValue(env))))
	}
	return template.MapValue(out)
}
