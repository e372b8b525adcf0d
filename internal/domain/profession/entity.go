package profession

import "careerpath/internal/domain/store"

const (
	TableTests        = "profession_tests"
	TableQuestions    = "profession_test_questions"
	TableOptions      = "question_options"
	TableScores       = "option_scores"
	TableResults      = "user_profession_results"
	TableDescriptions = "profession_descriptions"

	AddQuestionRPC = "add_profession_test_question"
)

const (
	ColID          = "id"
	ColTitle       = "title"
	ColDescription = "description"
	ColTestID      = "test_id"
	ColUserID      = "user_id"
	ColResults     = "results"
	ColCreatedAt   = "created_at"
	ColProfession  = "profession"
)

// QuestionTree embeds options and their per-profession scores under each
// question of a test.
var QuestionTree = []store.Embed{{
	Table:      TableOptions,
	ForeignKey: "question_id",
	Columns:    []string{"id", "option_text"},
	Embed: []store.Embed{{
		Table:      TableScores,
		ForeignKey: "option_id",
		Columns:    []string{"profession", "score"},
	}},
}}

var QuestionColumns = []string{"id", "question_text"}

type Option struct {
	Text   string             `json:"text"`
	Scores map[string]float64 `json:"scores"`
}

type NewQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []Option `json:"options"`
}
