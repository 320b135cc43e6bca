// Package quiz generates multiple-choice quizzes with an LLM and grades
// submissions deterministically.
package quiz

// Question is a single multiple-choice question. AnswerIndex points into
// Choices; Explanation is shown after grading.
type Question struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is a generated set of questions on one topic.
type Quiz struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// Submission is a learner's answers, parallel to Quiz.Questions. An entry
// of -1 means the question was skipped.
type Submission struct {
	QuizID  string `json:"quiz_id"`
	Answers []int  `json:"answers"`
}

// QuestionResult is the graded outcome for one question.
type QuestionResult struct {
	Correct     bool   `json:"correct"`
	Selected    int    `json:"selected"`
	AnswerIndex int    `json:"answer_index"`
	Explanation string `json:"explanation,omitempty"`
}

// GradeReport summarizes a graded submission.
type GradeReport struct {
	QuizID    string           `json:"quiz_id"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Percent   float64          `json:"percent"`
	Questions []QuestionResult `json:"questions"`
}
