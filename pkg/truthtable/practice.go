package truthtable

import (
	"fmt"
	"strings"
)

// Answer is a guessed result for one row.
type Answer int

const (
	Unanswered Answer = iota
	AnswerFalse
	AnswerTrue
)

// ParseAnswers reads one character per row: T/1 for true, F/0 for false,
// and ? _ or - for a row left blank. Spaces and commas are ignored.
func ParseAnswers(s string) ([]Answer, error) {
	var answers []Answer
	for i, ch := range s {
		switch ch {
		case 'T', 't', '1':
			answers = append(answers, AnswerTrue)
		case 'F', 'f', '0':
			answers = append(answers, AnswerFalse)
		case '?', '_', '-':
			answers = append(answers, Unanswered)
		case ' ', ',':
		default:
			return nil, fmt.Errorf("invalid answer %q at position %d", ch, i+1)
		}
	}
	return answers, nil
}

// Verdict grades one row.
type Verdict int

const (
	Missed Verdict = iota
	Correct
	Wrong
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "missed"
	}
}

// MarshalText encodes the verdict by name.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Report is the outcome of grading a result column.
type Report struct {
	Verdicts []Verdict `json:"verdicts"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
}

// Perfect reports whether every row was answered correctly.
func (r *Report) Perfect() bool {
	return r.Correct == r.Total
}

// Score renders the report as "3/4".
func (r *Report) Score() string {
	return fmt.Sprintf("%d/%d", r.Correct, r.Total)
}

// Check grades answers against the result column. There must be exactly
// one answer per row.
func (t *Table) Check(answers []Answer) (*Report, error) {
	if len(answers) != len(t.Rows) {
		return nil, fmt.Errorf("got %d answers for %d rows", len(answers), len(t.Rows))
	}

	r := &Report{Verdicts: make([]Verdict, len(answers)), Total: len(answers)}
	for i, a := range answers {
		switch {
		case a == Unanswered:
			r.Verdicts[i] = Missed
		case (a == AnswerTrue) == t.Rows[i].Result:
			r.Verdicts[i] = Correct
			r.Correct++
		default:
			r.Verdicts[i] = Wrong
		}
	}
	return r, nil
}

// FormatAnswers renders answers in the form ParseAnswers reads.
func FormatAnswers(answers []Answer) string {
	var b strings.Builder
	for _, a := range answers {
		switch a {
		case AnswerTrue:
			b.WriteByte('T')
		case AnswerFalse:
			b.WriteByte('F')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
