// Package stub provides a deterministic TextGenerator for local development
// runs without an API key.
package stub

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/careermitra/mentor-engine/internal/domain"
)

// Client echoes a canned mentor reply shaped like the real delegate output.
type Client struct{}

// New constructs the stub generator.
func New() *Client {
	slog.Warn("using stub text generator, replies are canned")
	return &Client{}
}

// Generate implements domain.TextGenerator. It never fails and returns a
// structured JSON reply so the response cleaner path is exercised end to end.
func (c *Client) Generate(_ domain.Context, _ string, userPrompt string) (string, error) {
	career := ""
	if strings.Contains(strings.ToLower(userPrompt), "coding") {
		career = "Software Engineer"
	}
	b, _ := json.Marshal(map[string]string{
		"reply":  "That's a great question. Tell me a bit more about the subjects you enjoy and I can suggest a direction.",
		"career": career,
	})
	return string(b), nil
}
