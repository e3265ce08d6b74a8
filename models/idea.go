package models

import (
	"fmt"
	"time"
)

// Idea is a synthesized startup idea accepted for a subreddit.
type Idea struct {
	Subreddit   string    `json:"subreddit"`
	Text        string    `json:"text"`
	Batch       int       `json:"batch"` // 1-based batch number within the subreddit
	ModelName   string    `json:"model_name"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Record renders the idea as it is appended to the output file.
func (i Idea) Record() string {
	return fmt.Sprintf("Idea inspired by r/%s:\n%s\n\n", i.Subreddit, i.Text)
}
