package domain

import "errors"

var (
	// ErrContentNotFound indicates the requested (department, difficulty)
	// partition is missing or empty. This is a content error, not something
	// a running session can recover from.
	ErrContentNotFound = errors.New("no questions for department and difficulty")
	// ErrNoSelection is returned when the user tries to advance without
	// choosing an option for the current question.
	ErrNoSelection = errors.New("no answer selected")
	// ErrSessionNotFound is returned when a user has no session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionInactive is returned when an operation hits a finished session.
	ErrSessionInactive = errors.New("quiz session is no longer active")
	// ErrOptionOutOfRange indicates a selected option index outside the
	// current question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrQuestionOutOfRange indicates a navigation target outside the
	// session's question sequence.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrInvalidTimeLimit indicates a time limit outside the allowed range.
	ErrInvalidTimeLimit = errors.New("invalid time limit")
	// ErrUserExists is returned on registration when the username or email
	// is already taken.
	ErrUserExists = errors.New("username or email already registered")
	// ErrAuthFailed is returned on bad credentials.
	ErrAuthFailed = errors.New("invalid username or password")
)
