package prompt

import (
	"fmt"
	"strings"

	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// GeneralResponse is the system-wide fallback reply: shown when no tool has
// anything to say, when generation fails, and when every sub-intent of a
// multi-intent turn fails.
const GeneralResponse = `I'm not sure how to help with that specific request. Here are some things I can assist you with:

• Check the status of your order
• Get hiking trail recommendations
• Learn about our Early Risers promotion
• Search our FAQ for information
• Connect you with a human customer service agent

Could you please let me know which of these services you're interested in, or provide more details about your request?`

// UnresolvedIntentsPrompt asks whether the user wants to resume previously
// opened, still-unfinished topics.
func UnresolvedIntentsPrompt(unresolved []statex.Intent) string {
	names := make([]string, len(unresolved))
	for i, intent := range unresolved {
		names[i] = string(intent)
	}
	noun, pronoun := "request", "that"
	if len(unresolved) > 1 {
		noun, pronoun = "requests", "those"
	}
	return fmt.Sprintf("I notice we haven't fully addressed your previous %s about %s. Would you like to continue with %s first?",
		noun, strings.Join(names, ", "), pronoun)
}

// ToolTimeoutPrompt is the template used when a tool misses its per-turn
// execution deadline.
func ToolTimeoutPrompt(intent statex.Intent) string {
	return fmt.Sprintf("The %s request took too long to complete. Apologize to the customer and ask them to try that part of their request again in a moment.", intent)
}
