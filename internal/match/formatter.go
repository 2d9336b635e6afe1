package match

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/careermitra/mentor-engine/internal/domain"
)

// Paragraph caps and the confidence bar for the templated opening.
const (
	maxSkillsShown    = 6
	maxJobsShown      = 5
	maxRoadmapSteps   = 6
	openingConfidence = 75.0
	paragraphJoiner   = "\n\n"
	roadmapHeading    = "Roadmap:"
	nextSteps10th     = "Consider taking MPC (Maths/Physics/Chemistry) or relevant vocational options."
	nextSteps12th     = "Look for suitable undergraduate programs or diploma options."
	encouragementKey  = "encouragement"
)

var encouragementPool = []string{"Nice move!", "Great step!", "Keep going!"}

// ResponseFormatter renders a matched entry into the multi-paragraph reply.
// The only nondeterminism is the encouragement pick when the entry carries no
// interest response of its own.
type ResponseFormatter struct {
	pick func(n int) int
}

// NewResponseFormatter returns a formatter with a random encouragement pick.
func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{pick: rand.Intn}
}

// NewResponseFormatterWithPick pins the encouragement selection, for tests.
func NewResponseFormatterWithPick(pick func(n int) int) *ResponseFormatter {
	return &ResponseFormatter{pick: pick}
}

// Format builds the reply as an ordered join of non-empty paragraphs:
// opening, stage snippet, description, skills line, jobs line, next-step
// advice, encouragement, and an optional roadmap appendix.
func (f *ResponseFormatter) Format(entry domain.CareerEntry, stage domain.Stage, confidence float64, utterance string) string {
	var opening string
	if confidence > openingConfidence {
		opening = entry.MentorTemplates[encouragementKey]
		if opening == "" {
			opening = fmt.Sprintf("Great! %s looks like a strong match.", entry.Name)
		}
	} else {
		opening = fmt.Sprintf("I think %s could suit you.", entry.Name)
	}

	var stageText string
	if stage != domain.StageUnknown {
		stageText = entry.Intelligence.StageResponse[stage]
	}

	var skillsLine string
	if skills := capJoin(entry.Skills, maxSkillsShown); skills != "" {
		skillsLine = "Key skills: " + skills
	}
	var jobsLine string
	if jobs := capJoin(entry.Jobs, maxJobsShown); jobs != "" {
		jobsLine = "Jobs: " + jobs
	}

	var nextSteps string
	switch stage {
	case domain.Stage10th:
		nextSteps = nextSteps10th
	case domain.Stage12th:
		nextSteps = nextSteps12th
	}

	encouragement := entry.Intelligence.InterestResponse
	if encouragement == "" {
		encouragement = encouragementPool[f.pick(len(encouragementPool))]
	}

	parts := make([]string, 0, 7)
	for _, p := range []string{opening, stageText, entry.Description, skillsLine, jobsLine, nextSteps, encouragement} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	reply := strings.Join(parts, paragraphJoiner)

	if wantsRoadmap(utterance) {
		if steps := entry.FuturePaths; len(steps) > 0 {
			if len(steps) > maxRoadmapSteps {
				steps = steps[:maxRoadmapSteps]
			}
			var b strings.Builder
			b.WriteString(reply)
			b.WriteString(paragraphJoiner)
			b.WriteString(roadmapHeading)
			for _, s := range steps {
				b.WriteString("\n- ")
				b.WriteString(s)
			}
			reply = b.String()
		}
	}
	return reply
}

func wantsRoadmap(utterance string) bool {
	m := strings.ToLower(utterance)
	return strings.Contains(m, "roadmap") || strings.Contains(m, "path")
}

func capJoin(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
