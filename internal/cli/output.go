package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case LoginResult:
		o.printLoginResult(v)
	case []Section:
		o.printSections(v)
	case []Branch:
		o.printBranches(v)
	case Branch:
		o.printBranch(v)
	case TopicPage:
		o.printTopicPage(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Language     string    `json:"language"`
	Avatar       string    `json:"avatar,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

// LoginResult combines user and token
type LoginResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Section response type
type Section struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Branch response type
type Branch struct {
	ID          string `json:"id"`
	SectionID   string `json:"section_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TopicCount  int    `json:"topic_count"`
	PostCount   int    `json:"post_count"`
}

// Topic response type
type Topic struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	PostCount int       `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page response type
type Page struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TopicPage response type
type TopicPage struct {
	Topics []Topic `json:"topics"`
	Page   Page    `json:"page"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Printf("Name: %s %s\n", u.FirstName, u.LastName)
	}
	fmt.Printf("Language: %s\n", u.Language)
	fmt.Printf("Registered: %s\n", u.RegisteredAt.Format(time.RFC3339))
	if !u.LastLoginAt.IsZero() {
		fmt.Printf("Last login: %s\n", u.LastLoginAt.Format(time.RFC3339))
	}
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printUser(l.User)
	fmt.Printf("Token: %s\n", l.SessionToken)
}

func (o *Output) printSections(sections []Section) {
	fmt.Printf("Sections (%d):\n", len(sections))
	for _, s := range sections {
		if s.Description != "" {
			fmt.Printf("  - %s (%s) - %s\n", s.Name, s.ID, s.Description)
		} else {
			fmt.Printf("  - %s (%s)\n", s.Name, s.ID)
		}
	}
}

func (o *Output) printBranches(branches []Branch) {
	fmt.Printf("Branches (%d):\n", len(branches))
	for _, b := range branches {
		fmt.Printf("  - %s (%s) - %d topics, %d posts\n", b.Name, b.ID, b.TopicCount, b.PostCount)
	}
}

func (o *Output) printBranch(b Branch) {
	fmt.Printf("Branch: %s (%s)\n", b.Name, b.ID)
	if b.Description != "" {
		fmt.Printf("Description: %s\n", b.Description)
	}
	fmt.Printf("Section: %s\n", b.SectionID)
	fmt.Printf("Topics: %d\n", b.TopicCount)
	fmt.Printf("Posts: %d\n", b.PostCount)
}

func (o *Output) printTopicPage(tp TopicPage) {
	fmt.Printf("Topics (page %d of %d, %d total):\n", tp.Page.Number, tp.Page.TotalPages, tp.Page.TotalItems)
	for _, t := range tp.Topics {
		fmt.Printf("  - %s (%s) by %s - %d posts, updated %s\n",
			t.Title, t.ID, t.Author, t.PostCount, t.UpdatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
