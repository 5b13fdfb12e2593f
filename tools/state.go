package tools

// State bundles the shared mutable pieces every stateful tool closes over:
// the session's permission record and the shell executor bound to it.
type State struct {
	Permissions *SessionPermissions
	Executor    *ShellExecutor
}

// NewState creates a fresh per-session State with empty permissions.
func NewState() *State {
	perms := NewSessionPermissions()
	return &State{
		Permissions: perms,
		Executor:    NewShellExecutor(perms),
	}
}

// ReadOnlyToolNames lists the information-gathering tool subset handed to
// the planner agent.
var ReadOnlyToolNames = []string{
	"show_file",
	"search_in_file",
	"directory_tree",
	"execute_shell_command",
	"think",
	"finish",
}

// NewCoreRegistry creates a registry with all core tools bound to state.
func NewCoreRegistry(state *State) *Registry {
	reg := NewRegistry()
	registerProjectTools(reg, state)
	registerFileTools(reg, state)
	return reg
}
