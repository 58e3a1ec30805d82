package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		provider string
		wantType any
		wantErr  bool
	}{
		{name: "openai", provider: "openai", wantType: &OpenAI{}},
		{name: "anthropic", provider: "anthropic", wantType: &Anthropic{}},
		{name: "unknown", provider: "bard", wantErr: true},
		{name: "empty", provider: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.provider, "test-key", "")
			if tc.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tc.wantType, p)
		})
	}
}

func TestNewOpenAI_DefaultModel(t *testing.T) {
	p := NewOpenAI("test-key", "")
	assert.Equal(t, defaultOpenAIModel, p.model)

	p = NewOpenAI("test-key", "gpt-4o")
	assert.Equal(t, "gpt-4o", p.model)
}

func TestNewAnthropic_DefaultModel(t *testing.T) {
	p := NewAnthropic("test-key", "")
	assert.Equal(t, defaultAnthropicModel, p.model)

	p = NewAnthropic("test-key", "claude-3-5-haiku-latest")
	assert.Equal(t, "claude-3-5-haiku-latest", string(p.model))
}
