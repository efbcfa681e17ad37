package model

import "time"

// SectionID uniquely identifies a forum section
type SectionID string

// BranchID uniquely identifies a branch within a section
type BranchID string

// TopicID uniquely identifies a topic within a branch
type TopicID string

// Section is a top-level grouping of branches
type Section struct {
	ID          SectionID
	Name        string
	Description string
	Position    int
}

// Branch is a forum board holding topics
type Branch struct {
	ID          BranchID
	SectionID   SectionID
	Name        string
	Description string
	TopicCount  int
	PostCount   int
}

// Topic is a discussion thread within a branch
type Topic struct {
	ID        TopicID
	BranchID  BranchID
	Title     string
	Author    string // username of the topic starter
	PostCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}
