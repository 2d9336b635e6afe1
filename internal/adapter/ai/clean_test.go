package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	rc := NewResponseCleaner()
	tests := []struct {
		name       string
		raw        string
		wantReply  string
		wantCareer string
	}{
		{
			name:       "plain text passes through",
			raw:        "What is your current education level?",
			wantReply:  "What is your current education level?",
			wantCareer: "",
		},
		{
			name:       "bare json object",
			raw:        `{"reply":"Consider software.","career":"Software Engineer"}`,
			wantReply:  "Consider software.",
			wantCareer: "Software Engineer",
		},
		{
			name:       "json embedded in prose",
			raw:        `Here is my suggestion: {"reply":"Try design.","career":"UX Designer"} hope it helps`,
			wantReply:  "Try design.",
			wantCareer: "UX Designer",
		},
		{
			name:       "markdown fenced json",
			raw:        "```json\n{\"reply\":\"Go for it.\",\"career\":\"Doctor\"}\n```",
			wantReply:  "Go for it.",
			wantCareer: "Doctor",
		},
		{
			name:       "braces inside strings do not break balancing",
			raw:        `{"reply":"use {curly} braces","career":"Writer"}`,
			wantReply:  "use {curly} braces",
			wantCareer: "Writer",
		},
		{
			name:       "malformed json falls back to raw",
			raw:        `advice {"reply": "broken`,
			wantReply:  `advice {"reply": "broken`,
			wantCareer: "",
		},
		{
			name:       "json without reply field falls back to raw",
			raw:        `note {"career":"Doctor"} end`,
			wantReply:  `note {"career":"Doctor"} end`,
			wantCareer: "",
		},
		{
			name:       "empty input",
			raw:        "",
			wantReply:  "",
			wantCareer: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, career := rc.Extract(tt.raw)
			assert.Equal(t, tt.wantReply, reply)
			assert.Equal(t, tt.wantCareer, career)
		})
	}
}
