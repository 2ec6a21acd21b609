package posting

import "math"

const minQuizOptions = 2

type QuizQuestion struct {
	Question     string
	Options      []string
	CorrectIndex int
}

func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return ErrEmptyQuizQuestion
	}
	if len(q.Options) < minQuizOptions {
		return ErrTooFewQuizOptions
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ErrCorrectIndexOutOfRange
	}
	return nil
}

// GradeQuiz scores a set of answers against the question list and returns
// a score in 0..100. A question counts as correct iff its answer is
// present, in range, and exactly equals the correct index. Missing or
// out-of-range answers count as incorrect; a nil entry is a skipped
// question. Zero questions scores zero.
func GradeQuiz(questions []QuizQuestion, answers []*int) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, q := range questions {
		if i >= len(answers) || answers[i] == nil {
			continue
		}
		a := *answers[i]
		if a < 0 || a >= len(q.Options) {
			continue
		}
		if a == q.CorrectIndex {
			correct++
		}
	}

	return int(math.Round(float64(correct) / float64(len(questions)) * 100))
}
