// Package llm provides a chat completions client for OpenAI-compatible
// endpoints (OpenAI itself and local Ollama servers).
//
// The render pipeline uses it to generate bilingual study lines when the user
// asks for generated input instead of supplying a file.
//
// # Configuration
//
// Provider selects the default base URL and model. OpenAI requires an API key;
// Ollama does not.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send system/user prompts, receive the text response.
// Client.HealthCheck: one-word ping used by the status command.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors and network timeouts with
// exponential backoff (base 1s, max 10s) and honours Retry-After. Context
// cancellation aborts retries immediately.
package llm
