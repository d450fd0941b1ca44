// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryWorld    = "world"
	CategorySystem   = "system"
)

// Canonical verbs.
const (
	VerbGo        = "GO"
	VerbInventory = "INVENTORY"
	VerbGet       = "GET"
	VerbDrop      = "DROP"
	VerbLook      = "LOOK"
	VerbSearch    = "SEARCH"
	VerbVerbose   = "VERBOSE"
	VerbSound     = "SOUND"
	VerbHelp      = "HELP"
	VerbQuit      = "QUIT"
	VerbVersion   = "VERSION"
	VerbRestart   = "RESTART"
	VerbYes       = "YES"
	VerbNo        = "NO"
)

// Handler identifiers mapping commands to interpreter handlers.
const (
	HandlerGo        = "go"
	HandlerInventory = "inventory"
	HandlerGet       = "get"
	HandlerDrop      = "drop"
	HandlerLook      = "look"
	HandlerSearch    = "search"
	HandlerVerbose   = "verbose"
	HandlerSound     = "sound"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
	HandlerVersion   = "version"
	HandlerRestart   = "restart"
	HandlerYes       = "yes"
	HandlerNo        = "no"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical verb.
	Name string
	// Aliases are alternate verbs for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "GET <item>|ALL".
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, world, system).
	Category string
	// Handler maps to the interpreter handler.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		{Name: VerbGo, Usage: "GO <direction>", Help: "Move in a direction (N, S, E, W, U, D)", Category: CategoryMovement, Handler: HandlerGo},

		{Name: VerbLook, Aliases: []string{"EXAMINE", "L"}, Usage: "LOOK [item]", Help: "Look around or examine something", Category: CategoryWorld, Handler: HandlerLook},
		{Name: VerbSearch, Usage: "SEARCH <item>", Help: "Search something closely", Category: CategoryWorld, Handler: HandlerSearch},
		{Name: VerbGet, Aliases: []string{"TAKE"}, Usage: "GET <item>|ALL", Help: "Pick up an item", Category: CategoryWorld, Handler: HandlerGet},
		{Name: VerbDrop, Usage: "DROP <item>|ALL", Help: "Drop an item", Category: CategoryWorld, Handler: HandlerDrop},
		{Name: VerbInventory, Aliases: []string{"I", "INV"}, Usage: "INVENTORY", Help: "Show what you are carrying", Category: CategoryWorld, Handler: HandlerInventory},

		{Name: VerbVerbose, Usage: "VERBOSE [ON|OFF]", Help: "Toggle full descriptions on every visit", Category: CategorySystem, Handler: HandlerVerbose},
		{Name: VerbSound, Usage: "SOUND [ON|OFF]", Help: "Toggle background sound", Category: CategorySystem, Handler: HandlerSound},
		{Name: VerbHelp, Aliases: []string{"?"}, Usage: "HELP", Help: "Show this help", Category: CategorySystem, Handler: HandlerHelp},
		{Name: VerbVersion, Usage: "VERSION", Help: "Show the game version", Category: CategorySystem, Handler: HandlerVersion},
		{Name: VerbRestart, Usage: "RESTART", Help: "Start the adventure over", Category: CategorySystem, Handler: HandlerRestart},
		{Name: VerbQuit, Aliases: []string{"EXIT"}, Usage: "QUIT", Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
		{Name: VerbYes, Usage: "YES", Help: "Confirm QUIT or RESTART", Category: CategorySystem, Handler: HandlerYes},
		{Name: VerbNo, Usage: "NO", Help: "Cancel QUIT or RESTART", Category: CategorySystem, Handler: HandlerNo},
	}
}

// IsDirectionShortcut reports whether verb is one of the single-letter movement shortcuts.
func IsDirectionShortcut(verb string) bool {
	exp, ok := shortcuts[verb]
	return ok && exp.Verb == VerbGo
}
