package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockModel is a scripted CompletionModel for tests and offline harnesses.
// Responses are replayed in FIFO order; every request is recorded so tests
// can assert on prompts and tool definitions the caller sent.
type MockModel struct {
	mu       sync.Mutex
	queue    []mockReply
	requests []Request
}

type mockReply struct {
	resp *Response
	err  error
}

// NewMockModel creates an empty MockModel.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// EnqueueText scripts a plain-text assistant response.
func (m *MockModel) EnqueueText(text string) {
	m.enqueue(&Response{
		ID:           "mock_" + uuid.New().String()[:8],
		Model:        "mock",
		Provider:     "mock",
		Message:      AssistantMessage(text),
		FinishReason: FinishReason{Reason: "stop"},
	}, nil)
}

// EnqueueToolCall scripts a single tool call response. Arguments are
// marshaled from the given map; a fresh call id is synthesized.
func (m *MockModel) EnqueueToolCall(name string, args map[string]interface{}) string {
	raw, _ := json.Marshal(args)
	id := "call_" + uuid.New().String()[:8]
	m.EnqueueToolCalls(ToolCall{ID: id, Name: name, Arguments: raw})
	return id
}

// EnqueueToolCalls scripts an assistant response carrying the given tool
// calls in order.
func (m *MockModel) EnqueueToolCalls(calls ...ToolCall) {
	parts := make([]ContentPart, 0, len(calls))
	for _, call := range calls {
		c := call
		parts = append(parts, ContentPart{Kind: ContentToolCall, ToolCall: &c})
	}
	m.enqueue(&Response{
		ID:           "mock_" + uuid.New().String()[:8],
		Model:        "mock",
		Provider:     "mock",
		Message:      Message{Role: RoleAssistant, Content: parts},
		FinishReason: FinishReason{Reason: "tool_calls"},
	}, nil)
}

// EnqueueError scripts a completion failure.
func (m *MockModel) EnqueueError(err error) {
	m.enqueue(nil, err)
}

func (m *MockModel) enqueue(resp *Response, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockReply{resp: resp, err: err})
}

// Complete implements CompletionModel by replaying the next scripted reply.
// An exhausted script is a configuration error, not a silent repeat.
func (m *MockModel) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.queue) == 0 {
		return nil, &ConfigurationError{SDKError: SDKError{
			Message: fmt.Sprintf("mock model: no scripted response for request %d", len(m.requests)),
		}}
	}

	reply := m.queue[0]
	m.queue = m.queue[1:]
	if reply.err != nil {
		return nil, reply.err
	}
	return reply.resp, nil
}

// Requests returns a copy of every request seen so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Remaining reports how many scripted replies are left unplayed.
func (m *MockModel) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
