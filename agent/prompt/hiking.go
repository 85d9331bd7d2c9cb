package prompt

import "fmt"

// Defaults applied when the customer declines to narrow their hiking
// preferences.
const (
	DefaultHikingLocation   = "Denver, CO"
	DefaultHikingDifficulty = "moderate"
	DefaultHikingLength     = "5"
)

func HikingNoLocation() string {
	return fmt.Sprintf("The customer has not provided a location for hiking recommendations. Ask them if they have a specific location in mind, otherwise we will assume they want a recommendation near Sierra Outfitters HQ, %s.", DefaultHikingLocation)
}

func HikingNoDifficulty() string {
	return "The customer has not provided the difficulty. Ask them to provide a difficulty level if they have one."
}

func HikingNoLength() string {
	return "The customer has not provided the hiking trail length. Ask them to provide a length if they have one."
}

func HikingNoneFound(location string) string {
	return fmt.Sprintf("I'm sorry, I couldn't find hiking trails near %s. Could you try a different location or provide more specific details?", location)
}

func HikingError(location string) string {
	return fmt.Sprintf(`I'm sorry, I encountered an issue while searching for hiking trails near %s.

This could be due to:
• A temporary service disruption
• Limited data for this specific location
• An issue with how the location was specified

Would you like to:
1. Try a different location?
2. Provide more details about the area you're interested in?
3. Specify a different difficulty level or trail length?`, location)
}

func HikingSuccess(hikes string) string {
	return fmt.Sprintf("Here are hiking recommendations: %s. If the hiking trails include formatting such as **, please remove it.\nPresent this information in a friendly, conversational way. Mention the trails, difficulty, and weather if available. Tell them we have plenty of products to help them prepare for their hike.", hikes)
}

// HikingTrailRequest is the system prompt sent to the model to produce the
// structured three-trail JSON payload.
func HikingTrailRequest(location, difficulty, length string) string {
	return fmt.Sprintf(`# Sierra Outfitters Hiking Recommendation Assistant

You are an expert hiking guide for Sierra Outfitters with deep knowledge of trails across the United States.

## User Request
The user is looking for hiking recommendations in: %s
Preferred difficulty level: %s
Preferred trail length: %s miles

## Your Task
1. Interpret the location provided and identify the specific region.
2. Recommend exactly 3 suitable hiking trails that match the criteria.

## Location Interpretation
- Convert general areas or landmarks into specific regions.
- Determine a 5-digit zipcode (or local equivalent) and an ISO 3166-1 alpha-2 country code.
- For national parks or landmarks, use the zipcode of the main entrance or visitor center.

## Response Format
Return ONLY valid JSON with no extra text, explanations, or markdown fences:

{
  "region": {"zipcode": "12345", "country_code": "US"},
  "trails": [
    {"name": "...", "location": "...", "difficulty": "easy|moderate|hard", "length": "X miles", "elevation_gain": "X ft", "considerations": "..."},
    {"name": "...", "location": "...", "difficulty": "easy|moderate|hard", "length": "X miles", "elevation_gain": "X ft", "considerations": "..."},
    {"name": "...", "location": "...", "difficulty": "easy|moderate|hard", "length": "X miles", "elevation_gain": "X ft", "considerations": "..."}
  ]
}

Requirements:
- Trail names MUST be specific (e.g., "Mount Sanitas Trail", not "Mountain Trail 1").
- Include real geographic hikes near the specified location.
- Ensure trails match the requested difficulty level.
- If you cannot find any trails, return an empty trails array.`, location, difficulty, length)
}
