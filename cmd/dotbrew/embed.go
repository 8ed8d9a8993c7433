package dotbrew

import "embed"

// embeddedTopics holds the markdown help topics served by "dotbrew help"
//
//go:embed topics/*.md
var embeddedTopics embed.FS
