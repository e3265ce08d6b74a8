package quota

// IdeaQuota counts how many more ideas a subreddit may contribute in the current run.
// It is owned by the sequential batch loop and is not safe for concurrent use.
type IdeaQuota struct {
	initial   int
	remaining int
}

func NewIdeaQuota(n int) *IdeaQuota {
	return &IdeaQuota{initial: n, remaining: n}
}

// Consume records one accepted idea and reports whether the quota is now exhausted.
func (q *IdeaQuota) Consume() bool {
	q.remaining--
	return q.Exhausted()
}

func (q *IdeaQuota) Exhausted() bool {
	return q.remaining <= 0
}

func (q *IdeaQuota) Remaining() int {
	return q.remaining
}

func (q *IdeaQuota) Used() int {
	return q.initial - q.remaining
}
