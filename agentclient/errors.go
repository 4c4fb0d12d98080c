package agentclient

import "errors"

var (
	// ErrUnavailable is returned when the agent runtime could not be reached.
	ErrUnavailable = errors.New("agentclient: agent runtime unavailable")

	// ErrTimeout is returned when a request to the agent runtime timed out.
	ErrTimeout = errors.New("agentclient: agent runtime timeout")

	// ErrUnsupportedAssistant is returned for an AssistantID not recognized by the runtime.
	ErrUnsupportedAssistant = errors.New("agentclient: unsupported assistant id")

	// ErrCircuitOpen is returned when the breaker is open for the target base URL.
	ErrCircuitOpen = errors.New("agentclient: circuit breaker open")
)
