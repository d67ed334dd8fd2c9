package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// checkupFocus maps a focus argument to the chat_ask question used for it.
var checkupFocus = map[string]string{
	"watering":    "Do I need to water?",
	"temperature": "How is the temperature?",
	"humidity":    "What about humidity?",
}

// CheckupPrompt handles the plant-checkup MCP prompt.
// It instructs the AI to diagnose the active plant from live readings.
type CheckupPrompt struct{}

// NewCheckupPrompt creates a CheckupPrompt.
func NewCheckupPrompt() *CheckupPrompt {
	return &CheckupPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *CheckupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("plant-checkup",
		mcp.WithPromptDescription(
			"Run a health check on your active plant: "+
				"current readings, watering schedule, problems and what to do next.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional extra topic: watering, temperature or humidity"),
		),
	)
}

// Handle processes the plant-checkup prompt request.
func (p *CheckupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	extra := ""
	if args := req.Params.Arguments; args != nil {
		if q, ok := checkupFocus[args["focus"]]; ok {
			extra = fmt.Sprintf("5. Run `chat_ask` with question='%s' and summarise the answer\n", q)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Plant Checkup",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please check on my plant.\n\n" +
						"1. Run `plant_list` and tell me which plant is active and whether any plant is due for watering\n" +
						"2. Run `sensor_status` and show me the readings in a clear, visual format\n" +
						"3. Run `chat_ask` with question='I have a problem, any advice?' for a full diagnostic\n" +
						"4. Tell me exactly what I should do today, most urgent first\n" +
						extra,
				),
			},
		},
	}, nil
}
