package core

import "errors"

// Sentinel errors callers branch on. Everything else is a wrapped
// fmt.Errorf chain terminal for the current command.
var (
	// ErrInvalidSource means the source string could not be parsed
	// (e.g. a shorthand with fewer than two segments).
	ErrInvalidSource = errors.New("invalid source: expected owner/repo or URL")

	// ErrSourceNotFound means an explicitly local path does not exist.
	ErrSourceNotFound = errors.New("local path does not exist")

	// ErrNoSkillsFound means discovery returned an empty set.
	ErrNoSkillsFound = errors.New("no skills found in source")

	// ErrUnknownAgent means an explicitly requested agent name is not
	// in the agent table.
	ErrUnknownAgent = errors.New("unknown agent")
)
