package app

// KeyBinding describes a single key binding for documentation.
type KeyBinding struct {
	Keys        []string
	Description string
	Context     string // "global", "playback", "queue"
}

// KeyMap contains all key bindings for help generation.
var KeyMap = []KeyBinding{
	// Global
	{[]string{"q", "ctrl+c"}, "Quit", "global"},

	// Playback
	{[]string{"space"}, "Play/pause", "playback"},
	{[]string{"x"}, "Stop", "playback"},
	{[]string{"n"}, "Next track", "playback"},
	{[]string{"p"}, "Previous track", "playback"},
	{[]string{"left"}, "Seek back", "playback"},
	{[]string{"right"}, "Seek forward", "playback"},
	{[]string{"+", "="}, "Volume up", "playback"},
	{[]string{"-"}, "Volume down", "playback"},
	{[]string{"m"}, "Mute", "playback"},
	{[]string{"r"}, "Cycle repeat mode", "playback"},
	{[]string{"s"}, "Toggle shuffle", "playback"},

	// Queue
	{[]string{"j", "down"}, "Move down", "queue"},
	{[]string{"k", "up"}, "Move up", "queue"},
	{[]string{"g"}, "First track", "queue"},
	{[]string{"G"}, "Last track", "queue"},
	{[]string{"enter"}, "Play track", "queue"},
	{[]string{"d", "delete"}, "Remove from queue", "queue"},
	{[]string{"c"}, "Clear queue", "queue"},
}

// KeysByContext returns key bindings filtered by context.
func KeysByContext(context string) []KeyBinding {
	var result []KeyBinding
	for _, kb := range KeyMap {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
