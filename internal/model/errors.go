package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrCommonUserNotFound = errors.New("common user not found")
	ErrUsernameExists     = errors.New("username already exists")

	// Forum errors
	ErrSectionNotFound = errors.New("section not found")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrTopicNotFound   = errors.New("topic not found")
)
