package horary

import (
	"strings"

	"Horary/internal/domain/models"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
)

// QuestionAnalyzer maps question text onto houses and significator roles
// using traditional keyword rules, including turned houses for questions
// asked about a third party.
type QuestionAnalyzer struct {
	cfg *config.Config
	log *xlogger.Logger
}

func NewQuestionAnalyzer(cfg *config.Config, log *xlogger.Logger) *QuestionAnalyzer {
	return &QuestionAnalyzer{cfg: cfg, log: log}
}

type questionRule struct {
	kind     string
	house    int
	keywords []string
}

// Rule order matters: the first matching rule decides the question type.
var questionRules = []questionRule{
	{"lost_object", 2, []string{"lost", "missing", "misplaced", "stolen", "where is my", "find my"}},
	{"pregnancy", 5, []string{"pregnant", "pregnancy", "conceive", "have a child", "have children", "baby"}},
	{"death", 8, []string{"die", "death", "dead", "pass away"}},
	{"illness", 6, []string{"sick", "illness", "disease", "recover", "surgery", "health", "cure"}},
	{"lawsuit", 7, []string{"lawsuit", "court", "legal", "sue", "trial", "judge"}},
	{"relationship", 7, []string{"marry", "marriage", "love", "relationship", "together", "boyfriend", "girlfriend", "divorce"}},
	{"career", 10, []string{"job", "career", "promotion", "hired", "employment", "business", "work out"}},
	{"money", 2, []string{"money", "wealth", "debt", "loan", "salary", "profit", "financial", "rich", "paid"}},
	{"property", 4, []string{"house", "home", "land", "property", "real estate", "apartment", "buy the"}},
	{"education", 9, []string{"exam", "examination", "study", "school", "university", "degree", "pass the"}},
	{"travel", 9, []string{"travel", "journey", "trip", "abroad", "voyage", "relocate", "move to"}},
}

// People the querent may ask about, with their radical houses. First match
// wins, so the list order is fixed.
var personHouses = []struct {
	word  string
	house int
}{
	{"mother", 10},
	{"father", 4},
	{"child", 5},
	{"son", 5},
	{"daughter", 5},
	{"brother", 3},
	{"sister", 3},
	{"sibling", 3},
	{"husband", 7},
	{"wife", 7},
	{"spouse", 7},
	{"partner", 7},
	{"friend", 11},
	{"enemy", 7},
	{"boss", 10},
	{"employer", 10},
}

// Natural significators by question type, in addition to the house rulers.
var naturalSignificators = map[string]map[string]string{
	"relationship": {"Venus": "natural significator of love"},
	"pregnancy":    {"Jupiter": "natural significator of fertility"},
	"career":       {"Sun": "natural significator of honors"},
	"money":        {"Jupiter": "natural significator of wealth"},
	"illness":      {"Saturn": "natural significator of chronic disease"},
	"lost_object":  {"Moon": "natural significator of lost things"},
}

// turnHouse counts offset houses from a radical house, both one-based.
func turnHouse(radical, offset int) int {
	return ((radical - 1 + offset - 1) % 12) + 1
}

// Analyze classifies the question and resolves the quesited house, turning
// the chart when the question concerns a third party's affairs.
func (a *QuestionAnalyzer) Analyze(question string) *models.QuestionAnalysis {
	lower := strings.ToLower(question)

	kind := "general"
	quesited := 7
	for _, rule := range questionRules {
		if containsAny(lower, rule.keywords) {
			kind = rule.kind
			quesited = rule.house
			break
		}
	}

	// A question about someone else's matter turns the quesited house from
	// that person's radical house. Relationship questions stay radical: the
	// person named IS the quesited.
	person, personHouse := findPerson(lower)
	if person != "" && kind != "relationship" && personHouse != 0 {
		switch kind {
		case "death":
			quesited = turnHouse(personHouse, 8)
		case "illness":
			quesited = turnHouse(personHouse, 6)
		case "money":
			quesited = turnHouse(personHouse, 2)
		case "career":
			quesited = turnHouse(personHouse, 10)
		case "general":
			quesited = personHouse
		default:
			quesited = turnHouse(personHouse, quesited)
		}
		a.log.Debug("turned houses for third party question",
			xlogger.String("person", person),
			xlogger.Int("person_house", personHouse),
			xlogger.Int("quesited", quesited))
	}

	relevant := []int{1, quesited}
	if person != "" && personHouse != quesited && personHouse != 1 {
		relevant = append(relevant, personHouse)
	}

	analysis := &models.QuestionAnalysis{
		QuestionType:   kind,
		RelevantHouses: relevant,
		Significators: models.SignificatorRoles{
			QuerentHouse:  1,
			QuesitedHouse: quesited,
			MoonRole:      "co-significator of querent",
		},
	}
	if special, ok := naturalSignificators[kind]; ok {
		analysis.Significators.Special = special
	}
	return analysis
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// findPerson looks for a third party reference such as "my mother". A bare
// keyword without the possessive is ignored to avoid false turns.
func findPerson(lower string) (string, int) {
	for _, p := range personHouses {
		if strings.Contains(lower, "my "+p.word) || strings.Contains(lower, "our "+p.word) {
			return p.word, p.house
		}
	}
	return "", 0
}
