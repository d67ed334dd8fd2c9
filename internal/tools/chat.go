package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
)

// DefaultMaxQuestionLength bounds chat_ask input, in runes.
const DefaultMaxQuestionLength = 500

// --- chat_ask ---

// ChatAskTool handles the chat_ask MCP tool.
type ChatAskTool struct {
	session Conversation
	maxLen  int
}

// NewChatAskTool creates a ChatAskTool. maxLen <= 0 means
// DefaultMaxQuestionLength.
func NewChatAskTool(session Conversation, maxLen int) *ChatAskTool {
	if maxLen <= 0 {
		maxLen = DefaultMaxQuestionLength
	}
	return &ChatAskTool{session: session, maxLen: maxLen}
}

// Definition returns the MCP tool definition for registration.
func (t *ChatAskTool) Definition() mcp.Tool {
	return mcp.NewTool("chat_ask",
		mcp.WithDescription(
			"Ask the plant care assistant a question. Answers use the live sensor reading "+
				"and the active plant. Recognised topics: state/condition, watering, temperature, "+
				"humidity, problems/advice. Anything else returns a short help message.",
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("The question, at most %d characters", t.maxLen)),
		),
	)
}

// Handle processes the chat_ask tool call.
func (t *ChatAskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question := strings.TrimSpace(req.GetString("question", ""))
	if question == "" {
		return mcp.NewToolResultError("'question' is required — ask about state, watering, temperature, humidity or problems"), nil
	}
	if n := utf8.RuneCountInString(question); n > t.maxLen {
		return mcp.NewToolResultError(fmt.Sprintf(
			"question is %d characters long; the limit is %d", n, t.maxLen,
		)), nil
	}

	reply := t.session.Ask(question)
	return mcp.NewToolResultText(reply.Text), nil
}

// --- chat_history ---

// ChatHistoryTool handles the chat_history MCP tool.
type ChatHistoryTool struct {
	session Conversation
}

// NewChatHistoryTool creates a ChatHistoryTool.
func NewChatHistoryTool(session Conversation) *ChatHistoryTool {
	return &ChatHistoryTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *ChatHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("chat_history",
		mcp.WithDescription("Show the conversation so far, oldest first."),
		mcp.WithNumber("limit",
			mcp.Description("Only show the most recent N messages (default: all)"),
		),
	)
}

// Handle processes the chat_history tool call.
func (t *ChatHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, ok := intArg(req, "limit", 0)
	if !ok || limit < 0 {
		return mcp.NewToolResultError("'limit' must be a non-negative whole number"), nil
	}

	msgs := t.session.Messages()
	if len(msgs) == 0 {
		return mcp.NewToolResultText("# 💬 Conversation\n\nNo messages yet. Use `chat_start` or `chat_ask`."), nil
	}
	total := len(msgs)
	if limit > 0 && limit < total {
		msgs = msgs[total-limit:]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# 💬 Conversation (%d of %d messages)\n\n", len(msgs), total)
	for _, m := range msgs {
		who := "🤖 Assistant"
		if m.IsFromUser {
			who = "🧑 You"
		}
		fmt.Fprintf(&sb, "**%s** _%s_\n\n%s\n\n---\n\n", who, m.Timestamp.Format(time.TimeOnly), m.Text)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- chat_start ---

// ChatStartTool handles the chat_start MCP tool.
type ChatStartTool struct {
	session  Conversation
	registry PlantRegistry
}

// NewChatStartTool creates a ChatStartTool.
func NewChatStartTool(session Conversation, registry PlantRegistry) *ChatStartTool {
	return &ChatStartTool{session: session, registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *ChatStartTool) Definition() mcp.Tool {
	return mcp.NewTool("chat_start",
		mcp.WithDescription(
			"Start a fresh conversation. Clears the history and greets the user "+
				"with the active plant, if any.",
		),
	)
}

// Handle processes the chat_start tool call.
func (t *ChatStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var welcome string
	if active, ok := t.registry.GetActive(); ok {
		welcome = t.session.Start(&active).Text
	} else {
		welcome = t.session.Start(nil).Text
	}
	return mcp.NewToolResultText(welcome), nil
}
