// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// Chat roles understood by every backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// answerPromptTmpl is the user message sent with every question.
var answerPromptTmpl = template.Must(template.New("answer").Parse(
	"Using the following search results:\n{{.Context}}\n\nAnswer the query: {{.Query}}"))

// RenderPrompt fills the answer template with the assembled context and query.
func RenderPrompt(contextText, query string) (string, error) {
	var buf bytes.Buffer
	err := answerPromptTmpl.Execute(&buf, struct {
		Context string
		Query   string
	}{Context: contextText, Query: query})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildMessages returns the system instruction followed by the rendered prompt.
func buildMessages(systemPrompt, contextText, query string) ([]Message, error) {
	prompt, err := RenderPrompt(contextText, query)
	if err != nil {
		return nil, err
	}
	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: prompt},
	}, nil
}
