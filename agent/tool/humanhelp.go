package tool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// humanHelpTool hands the conversation to a person: the model drafts an
// internal summary email from the transcript and the mailer delivers it to
// the support team.
type humanHelpTool struct {
	model  contractx.TextModel
	mailer contractx.Mailer
}

func (t *humanHelpTool) Name() string { return string(statex.IntentHumanHelp) }

func (t *humanHelpTool) Description() string {
	return "Escalates the conversation to a human customer service agent."
}

func (t *humanHelpTool) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentHumanHelp)

	request := "general assistance"
	if p, ok := params.(contractx.HumanHelpParams); ok && strings.TrimSpace(p.CustomerRequest) != "" {
		request = strings.TrimSpace(p.CustomerRequest)
	}

	if t.model == nil || t.mailer == nil {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.HumanHelpEmailFailed(),
		}
	}

	body, err := t.model.Complete(ctx, sess.ConversationHistory(), prompt.HumanHelpEmailRequest(request))
	if err != nil || strings.TrimSpace(body) == "" {
		log.Warn().Err(err).Msg("support email draft failed")
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.HumanHelpEmailFailed(),
		}
	}

	customerID := statex.NewCustomerID()
	if c := sess.CustomerInfo(); c != nil && c.Email != "" {
		customerID = c.Email
	}
	if err := t.mailer.SendSupportEmail(ctx, body, customerID); err != nil {
		log.Error().Err(err).Msg("support email delivery failed")
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"customerRequest": request},
			PromptTemplate: prompt.HumanHelpEmailFailed(),
		}
	}

	sess.ResolveIntent(statex.IntentHumanHelp)
	return contractx.ToolResult{
		Success:        true,
		Details:        map[string]any{"customerRequest": request},
		PromptTemplate: prompt.HumanHelpEmailSent(),
	}
}
