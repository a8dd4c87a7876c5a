package domain

import "time"

// Question is one multiple-choice question. Options order is significant
// (rendered as A, B, C, ...) and Correct is a zero-based index into Options.
type Question struct {
	ID          int64    `json:"id"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Bank is the static question catalog: department -> difficulty -> questions.
type Bank map[string]map[string][]Question

// QuizSettings is chosen once at setup and immutable for the session.
type QuizSettings struct {
	Department string `json:"department"`
	Difficulty string `json:"difficulty"`
	TimeLimit  int    `json:"timeLimit"` // seconds
}

// QuizResult is the scored outcome of one session. Answers has one entry per
// question; -1 marks a question the user never answered.
type QuizResult struct {
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Answers        []int     `json:"answers"`
	Date           time.Time `json:"date"`
	Department     string    `json:"department"`
	Difficulty     string    `json:"difficulty"`
}

// UserRecord is what the account store hands back; it never carries
// password material.
type UserRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
