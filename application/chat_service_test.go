package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatService_Reply(t *testing.T) {
	service := NewChatService()

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"greeting keyword", "Hola, buenos días", "How can I help"},
		{"case-insensitive match", "WHAT ARE YOUR SERVICES?", "sales, rentals and full administration"},
		{"fee question", "cuánto cobran de honorarios?", "administration fee"},
		{"hours question", "what are your hours", "Monday through Friday"},
		{"rent intent", "busco apartamento en arriendo", "for rent"},
		{"thanks", "ok thanks!", "You're welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, service.Reply(tt.input), tt.contains)
		})
	}
}

func TestChatService_Reply_FallbackWhenNothingMatches(t *testing.T) {
	service := NewChatService()

	fallback := service.Reply("xyzzy qwerty")
	assert.Contains(t, fallback, "advisor")
	assert.Equal(t, fallback, service.Reply("   "))
}

func TestChatService_Greeting(t *testing.T) {
	assert.NotEmpty(t, NewChatService().Greeting())
}
