package tool

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

const trailJSON = `{
  "region": {"zipcode": "80302", "country_code": "US"},
  "trails": [
    {"name": "Mount Sanitas Trail", "location": "Boulder, CO", "difficulty": "moderate", "length": "3.3 miles", "elevation_gain": "1343 ft", "considerations": "Busy on weekends"},
    {"name": "Royal Arch Trail", "location": "Boulder, CO", "difficulty": "moderate", "length": "3.4 miles", "elevation_gain": "1433 ft", "considerations": "Rocky sections"},
    {"name": "Bear Peak", "location": "Boulder, CO", "difficulty": "hard", "length": "5.8 miles", "elevation_gain": "2500 ft", "considerations": "Exposed summit"}
  ]
}`

func TestHikingAsksForLocationFirst(t *testing.T) {
	t.Parallel()

	tool := &hikingTool{model: &fakeModel{response: trailJSON}}
	sess := newTestSession()

	result := tool.Execute(context.Background(), contractx.HikingParams{}, sess)
	if result.Success {
		t.Fatal("first pass without preferences must ask a question")
	}
	if len(result.MissingParams) != 1 || result.MissingParams[0] != "location" {
		t.Fatalf("unexpected missing params: %v", result.MissingParams)
	}
	if sess.FollowUpCount(statex.IntentHikingRecommendation) != 1 {
		t.Fatal("clarification must increment the follow-up counter")
	}
}

func TestHikingAppliesDefaultsAfterOneFollowUp(t *testing.T) {
	t.Parallel()

	model := &fakeModel{response: trailJSON}
	tool := &hikingTool{model: model}
	sess := newTestSession()

	// First pass asks about location.
	tool.Execute(context.Background(), contractx.HikingParams{}, sess)

	// Second pass still has no preferences; defaults kick in.
	result := tool.Execute(context.Background(), contractx.HikingParams{}, sess)
	if !result.Success {
		t.Fatalf("expected success with defaults: %+v", result)
	}
	if result.Details["location"] != "Denver, CO" {
		t.Fatalf("expected default location, got %v", result.Details["location"])
	}
	if result.Details["difficulty"] != "moderate" || result.Details["length"] != "5" {
		t.Fatalf("expected default difficulty and length: %+v", result.Details)
	}
	if len(sess.UnresolvedIntents()) != 0 {
		t.Fatal("a delivered recommendation must resolve the intent")
	}
	if sess.FollowUpCount(statex.IntentHikingRecommendation) != 0 {
		t.Fatal("completion must reset the follow-up counter")
	}
	if recs := sess.HikingRecommendations(); len(recs) != 1 || len(recs[0].Trails) != 3 {
		t.Fatalf("recommendation not stored: %+v", recs)
	}
}

func TestHikingUsesProvidedPreferences(t *testing.T) {
	t.Parallel()

	tool := &hikingTool{model: &fakeModel{response: trailJSON}}
	sess := newTestSession()

	result := tool.Execute(context.Background(), contractx.HikingParams{
		Location:   "Boulder, CO",
		Difficulty: "moderate",
		Length:     "4",
	}, sess)
	if !result.Success {
		t.Fatalf("expected success with full preferences: %+v", result)
	}
	if !strings.Contains(result.PromptTemplate, "Mount Sanitas Trail") {
		t.Fatalf("template should include trail names: %s", result.PromptTemplate)
	}
}

func TestHikingStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	tool := &hikingTool{model: &fakeModel{response: "```json\n" + trailJSON + "\n```"}}
	sess := newTestSession()
	sess.SetPreference(statex.PreferenceLocation, "Boulder, CO")
	sess.SetPreference(statex.PreferenceDifficulty, "moderate")
	sess.SetPreference(statex.PreferenceLength, "4")

	result := tool.Execute(context.Background(), contractx.HikingParams{}, sess)
	if !result.Success {
		t.Fatalf("fenced JSON must still parse: %+v", result)
	}
}

func TestHikingEmptyTrailList(t *testing.T) {
	t.Parallel()

	tool := &hikingTool{model: &fakeModel{response: `{"region":{"zipcode":"00000","country_code":"US"},"trails":[]}`}}
	sess := newTestSession()
	sess.SetPreference(statex.PreferenceLocation, "Atlantis")
	sess.SetPreference(statex.PreferenceDifficulty, "easy")
	sess.SetPreference(statex.PreferenceLength, "2")

	result := tool.Execute(context.Background(), contractx.HikingParams{}, sess)
	if result.Success {
		t.Fatal("empty trail list must not succeed")
	}
	if !strings.Contains(result.PromptTemplate, "Atlantis") {
		t.Fatalf("template should echo the location: %s", result.PromptTemplate)
	}
	if len(sess.UnresolvedIntents()) != 1 {
		t.Fatal("failure must keep the intent unresolved")
	}
}

func TestHikingWeatherIsBestEffort(t *testing.T) {
	t.Parallel()

	tool := &hikingTool{
		model:   &fakeModel{response: trailJSON},
		weather: &fakeWeather{err: context.DeadlineExceeded},
	}
	sess := newTestSession()
	sess.SetPreference(statex.PreferenceLocation, "Boulder, CO")
	sess.SetPreference(statex.PreferenceDifficulty, "moderate")
	sess.SetPreference(statex.PreferenceLength, "4")

	result := tool.Execute(context.Background(), contractx.HikingParams{}, sess)
	if !result.Success {
		t.Fatalf("weather failure must not fail the recommendation: %+v", result)
	}
	if result.Details["weather"] != false {
		t.Fatalf("details should report weather unavailable: %+v", result.Details)
	}
}
