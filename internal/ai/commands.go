package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/seekbug-project/seek-bug/internal/debugger"
)

const suggestUsage = "Usage: ai suggest <your question or context>\n"

// SuggestCommand asks the model for a suggestion about the user's question.
type SuggestCommand struct {
	context Context
	llm     LLM
}

// NewSuggestCommand returns a SuggestCommand answering through llm. A nil
// llm uses PlaceholderLLM.
func NewSuggestCommand(c Context, llm LLM) *SuggestCommand {
	if llm == nil {
		llm = PlaceholderLLM{}
	}
	return &SuggestCommand{context: c, llm: llm}
}

func (c *SuggestCommand) DoExecute(ctx context.Context, args []string, result *debugger.ReturnObject) bool {
	userInput := strings.Join(args, " ")
	if userInput == "" {
		result.SetStatus(debugger.ReturnStatusFailed)
		result.Printf(suggestUsage)
		return false
	}

	if c.context.Debug {
		result.Printf("The prompt is: %s\n", userInput)
	}

	logr.FromContextOrDiscard(ctx).V(1).Info("asking the model", "model", c.context.ModelPath)

	suggestion, err := c.llm.Generate(ctx, userInput)
	if err != nil {
		result.AppendError(fmt.Sprintf("the model could not answer: %v", err))
		return false
	}

	result.SetStatus(debugger.ReturnStatusSuccessFinishResult)
	result.Printf("[AI Suggestion] You asked: %s\n", userInput)
	result.Printf("[AI Suggestion] %s\n", suggestion)

	return true
}

// RegisterCommands adds the "ai" command group and its subcommands to interp.
func RegisterCommands(interp *debugger.Interpreter, c Context, llm LLM) error {
	aiCmd, err := interp.AddMultiwordCommand("ai", "AI-based commands")
	if err != nil {
		return fmt.Errorf("could not register the ai command: %w", err)
	}

	if _, err := aiCmd.AddCommand(
		"suggest",
		NewSuggestCommand(c, llm),
		"Ask the AI for suggestions. Usage: ai suggest <question>",
	); err != nil {
		return fmt.Errorf("could not register ai suggest: %w", err)
	}

	return nil
}
