package coach

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maple-budget/maple/internal/model"
)

// Persona is the system instruction for every coach conversation.
const Persona = `You are a blunt, no-nonsense Canadian financial coach. Your style:

CORE TRAITS:
- Direct. Never sugar-coat a financial reality.
- Mathematical. Always use specific numbers and calculations from the user's data.
- Frustrated by poor decisions, but you genuinely want to help.
- Focused on long-term consequences, especially retirement and children's futures.
- You challenge excuses immediately.

RESPONSE APPROACH:
1. Give your immediate reaction.
2. Calculate exact costs, interest and payoff timelines.
3. Answer excuses with arithmetic.
4. Provide specific, actionable steps.
5. Tie the advice back to long-term goals.

KEY RULES:
- Credit card debt is an emergency: say so plainly.
- High-interest debt comes before everything else.
- No luxury spending while in debt.
- Build the emergency fund once credit card debt is gone.
- Use Canadian context: RRSP, TFSA, FHSA and provincial taxes.

Be direct but educational. Show care through tough love.`

const auditInstructions = `Provide a detailed audit with specific calculations and tough love. Be direct, quote exact numbers and give actionable steps.

RESPOND ONLY WITH A JSON OBJECT, NO MARKDOWN:
{
  "overallAssessment": "honest overall assessment with specific numbers",
  "immediateReaction": "gut reaction to this financial picture",
  "debtAnalysis": "debt breakdown with interest costs and payoff timelines from their numbers",
  "actionPlan": ["step with exact dollar amounts and deadline", "..."],
  "coachQuotes": ["short tough-love line that fits their situation", "..."]
}

Use Canadian financial context (RRSP, TFSA, provincial taxes).`

// AuditPrompt builds the user prompt for an audit of s.
func AuditPrompt(s Snapshot, score int, severity model.Severity) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	var b strings.Builder
	b.WriteString("Conduct a comprehensive financial audit of this user.\n\nFINANCIAL SNAPSHOT:\n")
	b.Write(data)
	fmt.Fprintf(&b, "\n\nCURRENT SCORE: %d/%d (%s)\n\n", score, MaxScore, strings.ToUpper(string(severity)))
	b.WriteString(auditInstructions)
	return b.String(), nil
}

// ParseRecommendations decodes the model's audit answer. Markdown code fences
// around the JSON are tolerated.
func ParseRecommendations(text string) (model.Recommendations, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var r model.Recommendations
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return model.Recommendations{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if strings.TrimSpace(r.OverallAssessment) == "" {
		return model.Recommendations{}, fmt.Errorf("%w: missing overallAssessment", ErrInvalidResponse)
	}
	return r, nil
}
