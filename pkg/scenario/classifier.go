package scenario

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"hs-chat-be/pkg/llm"
)

// historyTail caps how many prior turns the classifier prompt carries.
const historyTail = 6

var labelCleanRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Classifier picks a scenario label with the generation service. A
// failed call or an answer outside the fixed set yields the absent
// label, never a guess.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify returns the resolved label, or "" when none applies.
func (c *Classifier) Classify(ctx context.Context, message string, history []llm.Message) Name {
	prompt := c.buildPrompt(message, history)

	// Temperature 0 for deterministic label output.
	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0), llm.WithMaxTokens(16))
	if err != nil {
		c.logger.Printf("[CLASSIFY] generation call failed, label absent: %v", err)
		return ""
	}

	label := CleanLabel(response)
	if !Valid(label) {
		c.logger.Printf("[CLASSIFY] %q outside the label set, label absent", response)
		return ""
	}

	c.logger.Printf("[CLASSIFY] resolved label: %s", label)
	return label
}

// CleanLabel case-folds a raw model answer and strips everything but
// label characters, so "Admissions." and " admissions\n" both
// normalize to the same member.
func CleanLabel(raw string) Name {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	s = labelCleanRe.ReplaceAllString(s, "")
	return Name(s)
}

func (c *Classifier) buildPrompt(message string, history []llm.Message) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are an intent classifier for a university chatbot. Your ONLY job is to pick one scenario label.\n")
	prompt.WriteString("You do NOT answer the question. You only classify it.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<scenarios>\n")
	prompt.WriteString(DefinitionsText())
	prompt.WriteString("\n</scenarios>\n\n")

	if len(history) > 0 {
		tail := history
		if len(tail) > historyTail {
			tail = tail[len(tail)-historyTail:]
		}
		prompt.WriteString("<recent_conversation>\n")
		for _, msg := range tail {
			fmt.Fprintf(&prompt, "%s: %s\n", msg.Role, msg.Content)
		}
		prompt.WriteString("</recent_conversation>\n\n")
	}

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with EXACTLY one label from the list above, lowercase, no punctuation, no explanation.\n")
	prompt.WriteString("If the message is not about the university, respond with off_topic.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
