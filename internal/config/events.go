package config

// HookEvent describes one Claude Code hook event
type HookEvent struct {
	Name        string
	Description string
}

// KnownHookEvents lists the events Claude Code currently fires. Settings may
// name others; they are installed as-is.
var KnownHookEvents = []HookEvent{
	{Name: "PreToolUse", Description: "Runs after Claude creates tool parameters and before processing the tool call"},
	{Name: "PostToolUse", Description: "Runs immediately after a tool completes successfully"},
	{Name: "Notification", Description: "Runs when Claude needs permission to use a tool or when input has been idle for 60 seconds"},
	{Name: "Stop", Description: "Runs when the main Claude Code agent has finished responding"},
	{Name: "UserPromptSubmit", Description: "Runs when the user submits a prompt, before Claude processes it"},
	{Name: "SubagentStop", Description: "Runs when a Claude Code subagent (Task tool call) has finished responding"},
	{Name: "PreCompact", Description: "Runs before Claude Code is about to run a compact operation"},
	{Name: "SessionStart", Description: "Runs when Claude Code starts a new session or resumes an existing session"},
	{Name: "SessionEnd", Description: "Runs when a Claude Code session ends"},
}

// KnownHookEventNames returns the names of KnownHookEvents
func KnownHookEventNames() []string {
	names := make([]string, len(KnownHookEvents))
	for i, e := range KnownHookEvents {
		names[i] = e.Name
	}
	return names
}

// LookupHookEvent finds a known event by exact name
func LookupHookEvent(name string) (HookEvent, bool) {
	for _, e := range KnownHookEvents {
		if e.Name == name {
			return e, true
		}
	}
	return HookEvent{}, false
}
