package tool

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// hikingTool recommends trails. It asks one clarifying question per missing
// preference on the first pass; on later passes it fills the gaps with the
// Sierra Outfitters defaults rather than looping forever.
type hikingTool struct {
	model   contractx.TextModel
	weather contractx.WeatherService
}

func (t *hikingTool) Name() string { return string(statex.IntentHikingRecommendation) }

func (t *hikingTool) Description() string {
	return "Recommends hiking trails for a location, difficulty, and length."
}

// trailResponse is the structured payload requested from the model.
type trailResponse struct {
	Region struct {
		Zipcode     string `json:"zipcode"`
		CountryCode string `json:"country_code"`
	} `json:"region"`
	Trails []statex.Trail `json:"trails"`
}

func (t *hikingTool) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentHikingRecommendation)

	if p, ok := params.(contractx.HikingParams); ok {
		sess.SetPreference(statex.PreferenceLocation, p.Location)
		sess.SetPreference(statex.PreferenceDifficulty, p.Difficulty)
		sess.SetPreference(statex.PreferenceLength, p.Length)
	}

	if sess.FollowUpCount(statex.IntentHikingRecommendation) == 0 {
		if result, asked := t.askForMissing(sess); asked {
			return result
		}
	}

	location := preferenceOrDefault(sess, statex.PreferenceLocation, prompt.DefaultHikingLocation)
	difficulty := preferenceOrDefault(sess, statex.PreferenceDifficulty, prompt.DefaultHikingDifficulty)
	length := preferenceOrDefault(sess, statex.PreferenceLength, prompt.DefaultHikingLength)

	if t.model == nil {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.HikingError(location),
		}
	}

	raw, err := t.model.Complete(ctx, sess.LastConversations(10), prompt.HikingTrailRequest(location, difficulty, length))
	if err != nil {
		log.Warn().Err(err).Str("location", location).Msg("trail generation failed")
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.HikingError(location),
		}
	}

	var parsed trailResponse
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &parsed); err != nil {
		log.Warn().Err(err).Msg("trail payload is not valid JSON")
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.HikingError(location),
		}
	}
	if len(parsed.Trails) == 0 {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.HikingNoneFound(location),
		}
	}

	weather := t.lookupWeather(ctx, location)

	rec := statex.HikingRecommendation{
		Location:   location,
		Difficulty: difficulty,
		Length:     length,
		Weather:    weather,
		Trails:     parsed.Trails,
	}
	sess.AddHikingRecommendation(rec)
	sess.ResolveIntent(statex.IntentHikingRecommendation)
	sess.ResetFollowUpCount(statex.IntentHikingRecommendation)

	return contractx.ToolResult{
		Success: true,
		Details: map[string]any{
			"location":   location,
			"difficulty": difficulty,
			"length":     length,
			"weather":    weather != "",
			"trails":     trailSummaries(parsed.Trails),
		},
		PromptTemplate: prompt.HikingSuccess(formatTrails(parsed.Trails, weather)),
	}
}

// askForMissing returns a clarification result for the first absent
// preference, or asked=false when all three are present.
func (t *hikingTool) askForMissing(sess *statex.Session) (contractx.ToolResult, bool) {
	checks := []struct {
		key      statex.PreferenceKey
		param    string
		template string
	}{
		{statex.PreferenceLocation, "location", prompt.HikingNoLocation()},
		{statex.PreferenceDifficulty, "difficulty", prompt.HikingNoDifficulty()},
		{statex.PreferenceLength, "length", prompt.HikingNoLength()},
	}
	for _, c := range checks {
		if sess.Preference(c.key) != "" {
			continue
		}
		sess.IncrementFollowUpCount(statex.IntentHikingRecommendation)
		return contractx.ToolResult{
			Success:        false,
			MissingParams:  []string{c.param},
			PromptTemplate: c.template,
		}, true
	}
	return contractx.ToolResult{}, false
}

func (t *hikingTool) lookupWeather(ctx context.Context, location string) string {
	if t.weather == nil {
		return ""
	}
	conditions, err := t.weather.CurrentConditions(ctx, location)
	if err != nil {
		log.Debug().Err(err).Str("location", location).Msg("weather lookup skipped")
		return ""
	}
	return conditions
}

func preferenceOrDefault(sess *statex.Session, key statex.PreferenceKey, fallback string) string {
	if v := sess.Preference(key); v != "" {
		return v
	}
	return fallback
}

// stripJSONFences removes a surrounding markdown code fence, which models add
// despite instructions not to.
func stripJSONFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func formatTrails(trails []statex.Trail, weather string) string {
	var b strings.Builder
	for i, tr := range trails {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(tr.Name)
		b.WriteString(" (")
		b.WriteString(tr.Location)
		b.WriteString(", ")
		b.WriteString(tr.Difficulty)
		b.WriteString(", ")
		b.WriteString(tr.Length)
		if tr.ElevationGain != "" {
			b.WriteString(", elevation gain ")
			b.WriteString(tr.ElevationGain)
		}
		b.WriteString(")")
		if tr.Considerations != "" {
			b.WriteString(" - ")
			b.WriteString(tr.Considerations)
		}
	}
	if weather != "" {
		b.WriteString(". Current weather: ")
		b.WriteString(weather)
	}
	return b.String()
}

func trailSummaries(trails []statex.Trail) []string {
	out := make([]string, len(trails))
	for i, tr := range trails {
		out[i] = tr.Name
	}
	return out
}
