package feeder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"idea-miner/models"
)

const FEEDER_TIMEOUT = 30 * time.Second

// ErrSubredditNotFound is returned when reddit answers 403/404 for a subreddit feed
// (banned, private or misspelled).
var ErrSubredditNotFound = errors.New("subreddit not found or not accessible")

// RedditFeeder reads the "new" listing of a subreddit through its public Atom feed.
type RedditFeeder struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

func NewRedditFeeder(baseURL, userAgent string) *RedditFeeder {
	return &RedditFeeder{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: FEEDER_TIMEOUT,
			// 리다이렉트 시 User-Agent 를 유지한다. reddit 은 기본 Go UA 를 차단한다.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				req.Header.Set("User-Agent", userAgent)
				return nil
			},
		},
	}
}

// FeedURL returns the feed address of the newest posts of subreddit.
func (f *RedditFeeder) FeedURL(subreddit string, limit int) string {
	u := fmt.Sprintf("%s/r/%s/new/.rss", f.BaseURL, url.PathEscape(subreddit))
	if limit > 0 {
		u += fmt.Sprintf("?limit=%d", limit)
	}
	return u
}

// FetchNewPosts fetches the newest posts of subreddit, newest first.
// If limit is greater than 0, it returns only the first limit items.
func (f *RedditFeeder) FetchNewPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error) {
	feedURL := f.FeedURL(subreddit, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "application/atom+xml,application/rss+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("r/%s: status code %d: %w", subreddit, resp.StatusCode, ErrSubredditNotFound)
	case resp.StatusCode != http.StatusOK:
		bodySample, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("failed to fetch feed: status code %d, url: %s, body: %s", resp.StatusCode, feedURL, string(bodySample))
	}

	cleanedReader, err := cleanControlCharacters(resp.Body)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(cleanedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	posts := make([]models.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, toPost(subreddit, item))
	}

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	return posts, nil
}

func toPost(subreddit string, item *gofeed.Item) models.Post {
	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}

	var author string
	if item.Author != nil {
		author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = item.Authors[0].Name
	}

	id := item.GUID
	if id == "" {
		id = item.Link
	}

	return models.Post{
		ID:          id,
		Subreddit:   subreddit,
		Title:       strings.TrimSpace(item.Title),
		Body:        ExtractSelfText(content),
		Link:        item.Link,
		Author:      author,
		PublishedAt: published,
	}
}

// selfTextBlocks are the block elements reddit renders inside a self post body.
const selfTextBlocks = "p, li, pre, blockquote, h1, h2, h3, h4, h5, h6, td, th"

// nestedBlocks also covers list containers, whose items are visited on their own.
const nestedBlocks = selfTextBlocks + ", ul, ol, table"

// ExtractSelfText returns the plain text of a post body from the HTML content of a feed entry.
// Every block becomes its own line; list items are separated by a single newline, other blocks by a blank line.
// Link posts carry no "md" block and yield an empty body.
func ExtractSelfText(contentHTML string) string {
	if strings.TrimSpace(contentHTML) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return ""
	}

	md := doc.Find("div.md").First()
	if md.Length() == 0 {
		return ""
	}

	var b strings.Builder
	prevItem := false
	md.Find(selfTextBlocks).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Contents().Not(nestedBlocks).Text())
		if text == "" {
			return
		}
		item := goquery.NodeName(s) == "li"
		if b.Len() > 0 {
			if item && prevItem {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(text)
		prevItem = item
	})
	if b.Len() == 0 {
		return strings.TrimSpace(md.Text())
	}
	return b.String()
}

// XML에서 허용되지 않는 모든 제어 문자 범위입니다 (0x00부터 0x1F까지 중 탭, LF, CR 제외).
var invalidControlCharRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

func cleanControlCharacters(r io.Reader) (io.Reader, error) {
	bodyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read body for cleaning: %w", err)
	}

	cleanedBytes := invalidControlCharRegex.ReplaceAll(bodyBytes, []byte(""))

	return bytes.NewReader(cleanedBytes), nil
}
