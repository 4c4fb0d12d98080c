package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store, used by the orchestrator and httpapi
// tests; cmd/server always uses PostgresStore.
type MemoryStore struct {
	mu       sync.Mutex
	tasks    map[string]*Task
	messages map[string]*Message
	presets  map[string]*FilePreset
	texts    map[string]map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:    make(map[string]*Task),
		messages: make(map[string]*Message),
		presets:  make(map[string]*FilePreset),
		texts:    make(map[string]map[string]any),
	}
}

// PutTask seeds a task, for test setup.
func (s *MemoryStore) PutTask(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tasks[t.TaskID] = &cp
}

// PutMessage seeds a message, for test setup.
func (s *MemoryStore) PutMessage(m *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.messages[m.MessageID] = &cp
}

// PutFilePreset seeds a file preset, for test setup.
func (s *MemoryStore) PutFilePreset(p *FilePreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.presets[p.PresetID+"|"+p.OwnerID] = &cp
}

// PutOriginalText seeds stored segmented text, for test setup.
func (s *MemoryStore) PutOriginalText(fileID string, segments map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[fileID] = segments
}

func (s *MemoryStore) GetTask(_ context.Context, taskID string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *MemoryStore) GetMessage(_ context.Context, messageID string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return nil, ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) GetFilePreset(_ context.Context, principal, presetID string) (*FilePreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presets[presetID+"|"+principal]
	if !ok {
		return nil, ErrPresetNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) GetOriginalText(_ context.Context, fileID string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	segments, ok := s.texts[fileID]
	if !ok {
		return nil, ErrOriginalTextNotFound
	}
	return segments, nil
}

func (s *MemoryStore) UpdateTaskRunID(_ context.Context, taskID, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	t.LastRunID = runID
	return nil
}

func (s *MemoryStore) UpdateMessageThread(_ context.Context, messageID, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	m.ThreadID = threadID
	return nil
}

func (s *MemoryStore) SetMessageStatus(_ context.Context, messageID string, status MessageStatus, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	m.Status = status
	return nil
}

func (s *MemoryStore) SetTaskStatus(_ context.Context, taskID string, status TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	t.Status = status
	return nil
}

func (s *MemoryStore) FinalizeTranslation(_ context.Context, messageID, translatedText string, agentData AIAgentData, status TaskStatus, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return ErrMessageNotFound
	}
	m.Status = messageStatusForTask(status)
	m.TranslatedText = translatedText

	t, ok := s.tasks[m.TaskID]
	if !ok {
		return ErrTaskNotFound
	}
	t.Status = status
	t.LastRunID = agentData.LastRunID
	return nil
}
