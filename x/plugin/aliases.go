package plugin

import "github.com/seekbug-project/seek-bug/x/plugin/v0"

// Initialize is an alias for the current version's initialization function.
var Initialize = plugin.Initialize

// Options is an alias for the current version's options.
type Options = plugin.Options

// Prompt is the interpreter prompt installed by the current version.
const Prompt = plugin.Prompt
