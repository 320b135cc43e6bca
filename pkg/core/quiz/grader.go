package quiz

import (
	"fmt"
	"math"
)

// Grade scores a submission against its quiz. Grading is deterministic:
// no LLM is involved, the same submission always yields the same report.
func Grade(q *Quiz, sub Submission) (*GradeReport, error) {
	if q == nil {
		return nil, fmt.Errorf("quiz is nil")
	}
	if len(sub.Answers) != len(q.Questions) {
		return nil, fmt.Errorf("answer count mismatch: quiz has %d questions, submission has %d answers",
			len(q.Questions), len(sub.Answers))
	}

	report := &GradeReport{
		QuizID:    q.ID,
		Total:     len(q.Questions),
		Questions: make([]QuestionResult, len(q.Questions)),
	}

	for i, question := range q.Questions {
		selected := sub.Answers[i]
		correct := selected == question.AnswerIndex
		if correct {
			report.Score++
		}
		report.Questions[i] = QuestionResult{
			Correct:     correct,
			Selected:    selected,
			AnswerIndex: question.AnswerIndex,
			Explanation: question.Explanation,
		}
	}

	if report.Total > 0 {
		report.Percent = math.Round(float64(report.Score)/float64(report.Total)*10000) / 100
	}
	return report, nil
}
