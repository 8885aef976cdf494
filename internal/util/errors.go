package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUserNotFound       = errors.New("user not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrSubjectHasChapters = errors.New("cannot delete subject: delete associated chapters first")
	ErrChapterHasQuizzes  = errors.New("cannot delete chapter: delete associated quizzes first")
)
