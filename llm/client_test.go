package llm

import (
	"context"
	"errors"
	"testing"
)

// stubAdapter is a minimal ProviderAdapter for client routing tests.
type stubAdapter struct {
	name     string
	response *Response
	err      error
	calls    int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Complete(_ context.Context, req Request) (*Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.response
	resp.Provider = s.name
	return &resp, nil
}

func textResponse(text string) *Response {
	return &Response{
		Message:      AssistantMessage(text),
		FinishReason: FinishReason{Reason: "stop"},
	}
}

func TestClientRoutesToDefaultProvider(t *testing.T) {
	adapter := &stubAdapter{name: "stub", response: textResponse("hi")}
	client := NewClient(WithProvider("stub", adapter))

	resp, err := client.Complete(context.Background(), Request{Messages: []Message{UserMessage("hello")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Provider != "stub" {
		t.Errorf("expected provider stub, got %s", resp.Provider)
	}
}

func TestClientRoutesByRequestProvider(t *testing.T) {
	first := &stubAdapter{name: "first", response: textResponse("a")}
	second := &stubAdapter{name: "second", response: textResponse("b")}
	client := NewClient(
		WithProvider("first", first),
		WithProvider("second", second),
		WithDefaultProvider("first"),
	)

	_, err := client.Complete(context.Background(), Request{
		Provider: "second",
		Messages: []Message{UserMessage("hello")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.calls != 1 || first.calls != 0 {
		t.Errorf("routed to wrong provider: first=%d second=%d", first.calls, second.calls)
	}
}

func TestClientUnknownProvider(t *testing.T) {
	client := NewClient(WithProvider("stub", &stubAdapter{name: "stub", response: textResponse("x")}))

	_, err := client.Complete(context.Background(), Request{Provider: "nope"})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
}

func TestClientNoProviders(t *testing.T) {
	client := NewClient()
	_, err := client.Complete(context.Background(), Request{})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
}

func TestClientMiddlewareOrder(t *testing.T) {
	adapter := &stubAdapter{name: "stub", response: textResponse("hi")}

	var order []string
	mw := func(tag string) Middleware {
		return func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error) {
			order = append(order, tag+":before")
			resp, err := next(ctx, req)
			order = append(order, tag+":after")
			return resp, err
		}
	}

	client := NewClient(
		WithProvider("stub", adapter),
		WithMiddleware(mw("outer"), mw("inner")),
	)

	_, err := client.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"outer:before", "inner:before", "inner:after", "outer:after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestClientRetryMiddlewareRetriesUntilExhausted(t *testing.T) {
	adapter := &stubAdapter{name: "stub", err: &ServerError{ProviderError: ProviderError{
		SDKError: SDKError{Message: "flaky"}, Retryable: true,
	}}}
	client := NewClient(
		WithProvider("stub", adapter),
		WithMiddleware(RetryMiddleware(RetryPolicy{MaxRetries: 2, BaseDelay: 0.001, BackoffMultiplier: 1, MaxDelay: 0.001})),
	)

	_, err := client.Complete(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if adapter.calls != 3 {
		t.Errorf("expected 3 attempts through retry middleware, got %d", adapter.calls)
	}
}

func TestMockModelScripting(t *testing.T) {
	mock := NewMockModel()
	mock.EnqueueText("first")
	mock.EnqueueToolCall("show_file", map[string]interface{}{"path": "/tmp/a"})

	resp, err := mock.Complete(context.Background(), Request{Messages: []Message{UserMessage("go")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "first" {
		t.Errorf("got %q", resp.Text())
	}

	resp, err = mock.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := resp.ToolCalls()
	if len(calls) != 1 || calls[0].Name != "show_file" {
		t.Errorf("unexpected calls: %v", calls)
	}

	// Script exhausted.
	if _, err := mock.Complete(context.Background(), Request{}); err == nil {
		t.Fatal("expected error when script is exhausted")
	}
	if len(mock.Requests()) != 3 {
		t.Errorf("expected 3 recorded requests, got %d", len(mock.Requests()))
	}
}
