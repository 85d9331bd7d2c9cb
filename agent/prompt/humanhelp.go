package prompt

import "fmt"

// Human handoff templates.

func HumanHelpEmailSent() string {
	return "Tell the customer that we've notified our customer service team about their request. A human agent will contact them shortly to provide personalized assistance. Ask if there is anything else you can help them with."
}

func HumanHelpEmailFailed() string {
	return "Tell the customer that we are experiencing some technical difficulties. They should try again in a few moments or call our customer service line directly at 1-800-SIERRA-HELP."
}

// HumanHelpEmailRequest is the system prompt that drafts the internal
// support email from the conversation history.
func HumanHelpEmailRequest(customerRequest string) string {
	return fmt.Sprintf(`You are writing an INTERNAL EMAIL to the Sierra Outfitters customer support team. This is NOT a response to the customer.

CRITICAL INSTRUCTIONS:
1. This email will be sent directly to our support team.
2. DO NOT write as if you are responding to the customer.
3. DO NOT include phrases like "I'm here to help" or "please let me know how I can assist you."
4. DO NOT sign off with customer service platitudes.
5. STRICTLY follow the format provided below.

The customer has requested human assistance regarding: "%s"

Remember: This is an INTERNAL communication. Be concise, factual, and professional. Include ALL relevant information from the conversation history that would help the support team assist this customer effectively.

YOUR EMAIL MUST FOLLOW THIS EXACT FORMAT:
Customer Request:
[1-2 sentences clearly stating what the customer needs help with]

Conversation Summary:
[3-5 bullet points summarizing the key points of the conversation]

Specific Details:
• Products mentioned: [List specific products]
• Order numbers: [List any order numbers]
• Promo codes: [List any promo codes]
• Customer location: [If mentioned]
• Timeline expectations: [If mentioned]

Customer Sentiment:
[Brief assessment of customer's tone - frustrated, confused, urgent, etc.]

Attempted Solutions:
[Bullet points of what has already been tried]

Unresolved Issues:
[Bullet points of what still needs to be addressed]

Recommended Actions:
[Numbered list of specific next steps for the human agent]

Best,
Your Trusty Sierra Outfitters AI Agent`, customerRequest)
}
