// Package llm provides the completion layer the coder agents run on.
//
// It presents a small provider-agnostic surface: Message and ContentPart
// model a multi-turn tool-using conversation, Request/Response carry a
// single completion exchange, and CompletionModel is the narrow interface
// the agent executor consumes. A routing Client dispatches requests to
// registered ProviderAdapter backends and applies middleware; the bundled
// GollmAdapter backs the client with gollm-supported providers.
//
// The package also carries the shared error taxonomy (IsRetryable) and an
// exponential-backoff Retry helper usable as client middleware.
package llm
