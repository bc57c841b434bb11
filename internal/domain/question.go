package domain

type SessionID string

type Question struct {
	Type             string
	Difficulty       string
	Category         string
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// DeliveredQuestion is the shape handed back to callers: the correct
// and incorrect answers are merged into a single shuffled list so the
// client cannot tell them apart.
type DeliveredQuestion struct {
	Type       string   `json:"type"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
	Text       string   `json:"question"`
	Answers    []string `json:"answers"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryInventory is the question bank's live count of available
// questions for one category. It is queried per request, never cached.
type CategoryInventory struct {
	Total  int
	Easy   int
	Medium int
	Hard   int
}

type AnswerSubmission struct {
	Question     string `json:"question"`
	ChosenAnswer string `json:"chosen_answer"`
}
