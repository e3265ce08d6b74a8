package models

import "time"

// Post is one fetched subreddit submission. It is produced by the feeder and never mutated afterwards.
type Post struct {
	ID          string    `json:"id"`
	Subreddit   string    `json:"subreddit"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Link        string    `json:"link"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}

// FullText is the text sent to the summarizer: title and body separated by a blank line.
func (p Post) FullText() string {
	return p.Title + "\n\n" + p.Body
}
