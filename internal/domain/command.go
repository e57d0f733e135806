package domain

// Command is the parsed form of a cell. The concrete types below are the only
// implementations.
type Command interface {
	command()
}

// NoOpCommand is a cell with nothing left to run.
type NoOpCommand struct{}

type PrintAccountCommand struct{}

type DebugCommand struct{}

// PassthroughCommand hands Code to the general-purpose interpreter verbatim.
type PassthroughCommand struct {
	Code string
}

// NewChatCommand resets the conversation, then runs Rest.
type NewChatCommand struct {
	Rest string
}

// OverrideCommand runs Rest with Model as the current selection.
type OverrideCommand struct {
	Alias string
	Model ModelID
	Rest  string
}

type GenerateCommand struct {
	Prompt string
}

func (NoOpCommand) command()         {}
func (PrintAccountCommand) command() {}
func (DebugCommand) command()        {}
func (PassthroughCommand) command()  {}
func (NewChatCommand) command()      {}
func (OverrideCommand) command()     {}
func (GenerateCommand) command()     {}
