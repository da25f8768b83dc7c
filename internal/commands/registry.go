package commands

import (
	"sort"

	"cblbot/internal/commands/modules/cbl"
	"cblbot/internal/commands/modules/help"
	"cblbot/internal/commands/modules/ping"
	"cblbot/internal/commands/types"

	"github.com/bwmarrin/discordgo"
)

// Registry is the fixed command table. It is built once at startup and
// never changes afterwards.
type Registry struct {
	commands map[string]*types.Command
}

// DefaultModules returns every module the bot ships with.
func DefaultModules(deps *types.Dependencies) []types.CommandModule {
	return []types.CommandModule{
		cbl.New(deps),
		ping.New(deps),
		help.New(deps),
	}
}

// NewRegistry lets each module register its commands and freezes the result.
func NewRegistry(deps *types.Dependencies, modules ...types.CommandModule) *Registry {
	cmds := make(map[string]*types.Command)
	for _, m := range modules {
		m.Register(cmds, deps)
	}
	return &Registry{commands: cmds}
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*types.Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// ApplicationCommands returns the definitions to publish to Discord, sorted
// by name. Development commands are left out.
func (r *Registry) ApplicationCommands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, c := range r.commands {
		if c.Development {
			continue
		}
		out = append(out, c.ApplicationCommand)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every registered command name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
