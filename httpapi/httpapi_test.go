package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aurorah/streamcore/agentclient"
	"github.com/aurorah/streamcore/host"
	"github.com/aurorah/streamcore/httpapi"
	"github.com/aurorah/streamcore/mqueue"
	qredis "github.com/aurorah/streamcore/queue/redis"
	"github.com/aurorah/streamcore/queue"
	"github.com/aurorah/streamcore/orchestrator"
	"github.com/aurorah/streamcore/sse"
	"github.com/aurorah/streamcore/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type noopAgent struct{}

func (noopAgent) CreateThread(_ context.Context) (string, error) { return "thread-x", nil }
func (noopAgent) RunNewTask(_ context.Context, _ string, _ agentclient.AssistantID, _ string) (<-chan agentclient.ParsedChunk, <-chan error) {
	chunks := make(chan agentclient.ParsedChunk)
	close(chunks)
	errc := make(chan error, 1)
	errc <- nil
	close(errc)
	return chunks, errc
}
func (a noopAgent) RunHITLTask(ctx context.Context, threadID string, assistantID agentclient.AssistantID, _ string) (<-chan agentclient.ParsedChunk, <-chan error) {
	return a.RunNewTask(ctx, threadID, assistantID, "")
}

func newTestServer(t *testing.T) (*httpapi.Server, *store.MemoryStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	mqClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = mqClient.Close() })
	q := mqueue.New(mqClient, mqueue.Config{KeyPrefix: "mq:httptest:"})
	adapter := sse.NewAdapter(q)

	jobClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = jobClient.Close() })
	storage := qredis.New(jobClient)
	jobQueue := queue.New(storage, queue.WithConcurrency(1))

	mem := store.NewMemoryStore()
	orch := orchestrator.New(q, noopAgent{}, mem)
	h, err := host.New(jobQueue, orch)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = h.Run(ctx) }()

	srv, err := httpapi.New(q, adapter, h, mem)
	require.NoError(t, err)
	return srv, mem
}

func TestHandleCreateMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	body, _ := json.Marshal(map[string]string{"sender": "user", "text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/mq/channels/chan-1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "hello", resp["text"])
}

func TestHandleCreateMessage_ValidationFailure(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	body, _ := json.Marshal(map[string]string{"sender": "", "text": ""})
	req := httptest.NewRequest(http.MethodPost, "/mq/channels/chan-1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChannelInfoAndDelete(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	body, _ := json.Marshal(map[string]string{"sender": "user", "text": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/mq/channels/chan-2/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	infoReq := httptest.NewRequest(http.MethodGet, "/mq/channels/chan-2/info", nil)
	infoRec := httptest.NewRecorder()
	handler.ServeHTTP(infoRec, infoReq)
	require.Equal(t, http.StatusOK, infoRec.Code)

	delReq := httptest.NewRequest(http.MethodDelete, "/mq/channels/chan-2", nil)
	delRec := httptest.NewRecorder()
	handler.ServeHTTP(delRec, delReq)
	require.Equal(t, http.StatusOK, delRec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(delRec.Body.Bytes(), &resp))
	require.Equal(t, true, resp["deleted"])
}

func TestHandleRunChatbotMessage(t *testing.T) {
	srv, mem := newTestServer(t)
	handler := srv.Handler()

	mem.PutTask(&store.Task{TaskID: "task-1", Status: store.TaskReady, ThreadID: "thread-1"})
	mem.PutMessage(&store.Message{MessageID: "msg-1", TaskID: "task-1", Status: store.MessagePending})

	body, _ := json.Marshal(map[string]string{"assistant_id": string(agentclient.TranslationAssistantA1)})
	req := httptest.NewRequest(http.MethodPost, "/chatbot/tasks/task-1/messages/msg-1/run", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		task, err := mem.GetTask(context.Background(), "task-1")
		return err == nil && task.Status == store.TaskCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHandleRunChatbotMessage_UnsupportedAssistant(t *testing.T) {
	srv, mem := newTestServer(t)
	handler := srv.Handler()

	mem.PutTask(&store.Task{TaskID: "task-2", Status: store.TaskReady})
	mem.PutMessage(&store.Message{MessageID: "msg-2", TaskID: "task-2", Status: store.MessagePending})

	body, _ := json.Marshal(map[string]string{"assistant_id": "not-a-real-assistant"})
	req := httptest.NewRequest(http.MethodPost, "/chatbot/tasks/task-2/messages/msg-2/run", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVersion(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/debug/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
