package genplan

import (
	"fmt"
	"strings"
)

const scheduleSystemPrompt = `You are an expert instructional designer for a Brazilian pre-military youth training organization. You design realistic, progressive class schedules grounded in the program's knowledge base. Respond in Brazilian Portuguese.`

const analysisSystemPrompt = `You are a pedagogical assistant for a Brazilian youth training program. You analyze past lesson plans and propose hooks for the next class. Respond in Brazilian Portuguese.`

const baseRules = `
**Critical rules:**
1. KNOWLEDGE BASE: the most important rule is to use the knowledge base above to
   inspire and detail the activities. Schedules must be realistic and aligned with
   the practices it describes.
2. CONTINUOUS LEARNING: when past feedback is provided, learn from the positive
   points to repeat successes and pay close attention to improvement points so
   mistakes are not repeated. Use the recorded ideas as inspiration.
3. WEATHER ADAPTATION: adapt the schedule to the forecast. On a rainy day ALL
   activities MUST suit an indoor space (classroom, gym): knots and lashings,
   first aid, self defense on mats, orientation theory, formation drill under
   cover. On sunny or cloudy days prefer outdoor work: camouflage, shelter
   building, the obstacle course.
4. DATE RELEVANCE: consider the class date for seasonal or civic themes
   (e.g. national holidays in Brazil).
5. LOGICAL PROGRESSION: each activity should lead naturally into the next.
6. AGE RANGE: Kids classes (10-13) get shorter, more playful activities; Juvenile
   classes (14-17) get more technical and demanding ones.
7. MANDATORY STRUCTURE, adapted to the theme, weather and knowledge base:
   opening formation and ceremony; physical conditioning; the core technical or
   theoretical instruction; a competitive dynamic or simulation applying it; and
   a closing review.
8. NEXT CLASS HOOK: end with a creative suggestion for the next class that builds
   on this one.`

// SchedulePrompt renders the user-turn prompt for a schedule request.
func SchedulePrompt(req ScheduleRequest) string {
	var b strings.Builder

	if req.FullGeneration() {
		b.WriteString("Your task is to be creative and generate a theme, pedagogical objectives, and a complete class schedule from scratch, based on the input parameters, the knowledge base, and any feedback from past classes.\n")
	} else {
		b.WriteString("Your task is to create a detailed class schedule for the given theme and objectives, honoring them verbatim, based on the input parameters, the knowledge base, and any feedback from past classes.\n")
	}

	b.WriteString(knowledgeBase)

	if req.FeedbackContext != "" {
		b.WriteString("\n**FEEDBACK FROM PAST CLASSES:**\n")
		b.WriteString("Analyze the feedback below to refine your suggestions.\n")
		b.WriteString(req.FeedbackContext)
		b.WriteString("\n")
	}

	if req.ContinuationContext != "" {
		b.WriteString("\n**IMPORTANT CONTEXT:**\n")
		b.WriteString("The previous class ended with the following suggestion, or the following content about the previous class was provided. Use it as the main inspiration for this class so the progression stays coherent.\n")
		b.WriteString(fmt.Sprintf("Content/Suggestion: %q\n", req.ContinuationContext))
	}

	b.WriteString(baseRules)

	b.WriteString("\n\n**Input parameters:**\n")
	b.WriteString(fmt.Sprintf("- Target audience: %s\n", req.Audience))
	b.WriteString(fmt.Sprintf("- Class duration: %d hours\n", req.Audience.DurationHours()))
	if !req.FullGeneration() {
		b.WriteString(fmt.Sprintf("- Main theme: %s\n", req.Theme))
		b.WriteString(fmt.Sprintf("- Pedagogical objectives: %s\n", req.Objectives))
	}
	b.WriteString(fmt.Sprintf("- Class date: %s\n", req.ClassDate))
	b.WriteString(fmt.Sprintf("- Weather forecast: %s\n", req.Weather))

	return b.String()
}

// AnalysisPrompt renders the user-turn prompt for lesson analysis.
func AnalysisPrompt(lessonText string) string {
	var b strings.Builder

	b.WriteString("Analyze the content of the previous lesson plan below and create a suggestion (a hook) for the next class that is a logical, creative continuation.\n\n")
	b.WriteString("**Previous lesson plan:**\n---\n")
	b.WriteString(lessonText)
	b.WriteString("\n---\n\n")
	b.WriteString("Look at the theme, objectives and activities above. Write a single sentence or short paragraph that works as a clear, inspiring suggestion for the NEXT class theme. ")
	b.WriteString("For example, after a class on basic knots a good suggestion would be applying those knots to build improvised shelters. ")
	b.WriteString("Answer with ONLY the suggestion, no preamble.")

	return b.String()
}
