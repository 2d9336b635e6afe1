// Package intent provides rule-based detectors that map raw chat text to an
// educational stage and an ordered set of interest tags. Both detectors are
// pure functions over pre-compiled patterns.
package intent

import (
	"regexp"
	"strings"

	"github.com/careermitra/mentor-engine/internal/domain"
)

// stagePatterns is ordered: the first matching pattern wins. Order is the
// definition order below, not a confidence ranking.
var stagePatterns = []struct {
	stage domain.Stage
	re    *regexp.Regexp
}{
	{domain.Stage10th, regexp.MustCompile(`\b(10th|tenth|class 10|grade 10|ssc|matric)\b`)},
	{domain.Stage12th, regexp.MustCompile(`\b(12th|twelfth|class 12|grade 12|hsc|intermediate|plus two|12th passed)\b`)},
	{domain.StageUG, regexp.MustCompile(`\b(ug|undergrad|btech|b\.tech|bsc|be|bachelor)\b`)},
	{domain.StagePG, regexp.MustCompile(`\b(pg|postgrad|mtech|msc|mba|masters|phd)\b`)},
}

// interestPatterns maps each interest tag to a single word-boundary
// alternation over its keyword list. Definition order fixes the scan order.
var interestPatterns = []struct {
	tag string
	re  *regexp.Regexp
}{
	{"coding", keywordPattern("coding", "programming", "python", "java", "software", "developer", "web", "it", "cs", "computer")},
	{"medical", keywordPattern("medical", "doctor", "mbbs", "medicine", "health", "biotech", "biology")},
	{"design", keywordPattern("design", "ui", "ux", "graphic", "editing", "video", "creative", "art")},
	{"commerce", keywordPattern("commerce", "bcom", "business", "finance", "accounting")},
	{"science", keywordPattern("science", "physics", "chemistry", "biology", "research", "bsc")},
}

func keywordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

// DetectStage returns the first stage whose pattern matches the message, or
// StageUnknown when none does.
func DetectStage(message string) domain.Stage {
	msg := strings.ToLower(message)
	for _, p := range stagePatterns {
		if p.re.MatchString(msg) {
			return p.stage
		}
	}
	return domain.StageUnknown
}

// ExtractInterests returns the interest tags whose keyword lists match the
// message. The result preserves first-matched order and contains no
// duplicates; a tag is included once any one of its keywords hits.
func ExtractInterests(message string) []string {
	msg := strings.ToLower(message)
	var found []string
	for _, p := range interestPatterns {
		if p.re.MatchString(msg) {
			found = append(found, p.tag)
		}
	}
	return found
}
