// Package prompts implements MCP prompt handlers for PlantCare.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a sequence of tool calls. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/mark3labs/mcp-go/mcp"
)

// SetupPrompt handles the plant-setup MCP prompt.
// It walks a new user through registering a plant and starting a chat.
type SetupPrompt struct{}

// NewSetupPrompt creates a SetupPrompt.
func NewSetupPrompt() *SetupPrompt {
	return &SetupPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SetupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("plant-setup",
		mcp.WithPromptDescription(
			"Register a plant and start getting care advice. "+
				"Asks for the missing details, adds the plant and opens a conversation.",
		),
		mcp.WithArgument("plant_name",
			mcp.ArgumentDescription("Name for the plant, e.g. 'Balcony tomato'"),
		),
		mcp.WithArgument("type",
			mcp.ArgumentDescription("Plant kind. Default: tomato"),
		),
	)
}

// Handle processes the plant-setup prompt request.
func (p *SetupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := ""
	kind := string(plants.DefaultType)
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["plant_name"]; ok && strings.TrimSpace(v) != "" {
			name = strings.TrimSpace(v)
		}
		if v, ok := args["type"]; ok && strings.TrimSpace(v) != "" {
			kind = strings.TrimSpace(v)
		}
	}

	nameStep := fmt.Sprintf("The plant is called '%s'.", name)
	if name == "" {
		nameStep = "Ask me what the plant is called."
	}

	kindNote := ""
	if _, known := plants.Canonical(plants.Type(kind)); !known {
		kindNote = fmt.Sprintf(
			"\n\nNote: '%s' has no reference profile, so advice will use the %s ranges.",
			kind, plants.DefaultProfile().Name,
		)
	}

	return &mcp.GetPromptResult{
		Description: "Set up a plant",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to start tracking a %s plant. %s\n\n"+
						"Please:\n"+
						"1. Ask me how old it is (in days) and how often I water it\n"+
						"2. Run `plant_add` with those details and type='%s'\n"+
						"3. If it is not the active plant, offer to run `plant_activate`\n"+
						"4. Run `chat_start` and show me the welcome message\n"+
						"5. Run `sensor_status` and tell me if anything needs attention%s",
					kind, nameStep, kind, kindNote,
				)),
			},
		},
	}, nil
}
