package config

// SourceFileExtensions lists the file extensions recognized as mell sources.
var SourceFileExtensions = []string{".mel"}

// ProjectConfigFile is the per-project configuration file picked up by the
// driver from the source directory.
const ProjectConfigFile = "mell.yaml"

// ReplPrompt is printed by the REPL before each input line.
const ReplPrompt = "mell> "
