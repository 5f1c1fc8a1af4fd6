package llm

import "testing"

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient("ollama", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ollamaClient, ok := client.(*OllamaClient)
	if !ok {
		t.Fatalf("expected OllamaClient, got %T", client)
	}
	if ollamaClient.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_LMStudioAliases(t *testing.T) {
	for _, provider := range []string{"lmstudio", "LM-Studio", " llmstudio "} {
		client, err := NewClient(provider, "llama3", "")
		if err != nil {
			t.Fatalf("NewClient(%q) error: %v", provider, err)
		}
		lm, ok := client.(*LMStudioClient)
		if !ok {
			t.Fatalf("expected LMStudioClient, got %T", client)
		}
		if lm.baseURL != defaultLMStudioBaseURL {
			t.Errorf("baseURL = %q, want %q", lm.baseURL, defaultLMStudioBaseURL)
		}
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	if _, err := NewClient("unknown", "model", ""); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestUsesCompactPrompt(t *testing.T) {
	tests := map[string]bool{
		"":          false,
		"copilot":   false,
		"ollama":    true,
		"lmstudio":  true,
		"lm-studio": true,
	}
	for provider, want := range tests {
		if got := UsesCompactPrompt(provider); got != want {
			t.Errorf("UsesCompactPrompt(%q) = %v, want %v", provider, got, want)
		}
	}
}
