package agentclient

// AssistantID identifies which configured LLM assistant/graph a run targets.
type AssistantID string

const (
	// TaskAssistant drives a chatbot task bound to the task's own thread.
	TaskAssistant AssistantID = "task_assistant"

	// TranslationAssistantA1 is the first translation agent variant.
	TranslationAssistantA1 AssistantID = "translation_assistant_a1"

	// TranslationAssistantA2 is the second translation agent variant.
	TranslationAssistantA2 AssistantID = "translation_assistant_a2"
)

// Valid reports whether id is one of the recognized assistants.
func (id AssistantID) Valid() bool {
	switch id {
	case TaskAssistant, TranslationAssistantA1, TranslationAssistantA2:
		return true
	default:
		return false
	}
}
