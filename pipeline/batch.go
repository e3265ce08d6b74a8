package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"idea-miner/config"
	"idea-miner/models"
	"idea-miner/quota"
	"idea-miner/sink"
)

// batchSeparator joins the summaries of a batch into one context string.
const batchSeparator = "\n\n"

// Partition splits summaries into contiguous batches of at most size elements, in order.
// The last batch may be shorter. A non-positive size is treated as 1.
func Partition(summaries []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}

	batches := make([][]string, 0, (len(summaries)+size-1)/size)
	for start := 0; start < len(summaries); start += size {
		end := min(start+size, len(summaries))
		batches = append(batches, summaries[start:end])
	}
	return batches
}

// CollectionReport describes what one subreddit contributed to a run.
type CollectionReport struct {
	Subreddit string
	Summaries int
	Batches   int
	Attempted int // batches actually sent to the idea generator
	Accepted  int
	QuotaLeft int
	Exhausted bool
	Err       error
}

// BatchDriver sends batches to the idea generator one at a time and writes accepted ideas.
type BatchDriver struct {
	generator IdeaSynthesizer
	sink      sink.Sink
	now       func() time.Time
}

func NewBatchDriver(generator IdeaSynthesizer, out sink.Sink) *BatchDriver {
	return &BatchDriver{
		generator: generator,
		sink:      out,
		now:       time.Now,
	}
}

// SynthesizeForCollection writes at most ideaQuota ideas for subreddit. The quota is checked only
// after an accepted idea, and once it reaches zero the remaining batches are never sent.
// A sink failure aborts the subreddit and is returned.
func (d *BatchDriver) SynthesizeForCollection(ctx context.Context, subreddit string, summaries []string, ideaQuota, batchSize int) (CollectionReport, error) {
	report := CollectionReport{Subreddit: subreddit}
	err := d.synthesizeInto(ctx, &report, summaries, ideaQuota, batchSize)
	return report, err
}

// synthesizeInto keeps report current after every batch, so a caller that recovers a panic
// still sees what was already written.
func (d *BatchDriver) synthesizeInto(ctx context.Context, report *CollectionReport, summaries []string, ideaQuota, batchSize int) error {
	subreddit := report.Subreddit
	q := quota.NewIdeaQuota(ideaQuota)
	batches := Partition(summaries, batchSize)

	report.Summaries = len(summaries)
	report.Batches = len(batches)
	report.QuotaLeft = q.Remaining()

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		batchNo := i + 1
		report.Attempted++

		result := d.generator.Generate(ctx, strings.Join(batch, batchSeparator))
		text := strings.TrimSpace(result.Text)
		if !result.OK() || text == "" {
			config.Logger.Warnf("No valid unique idea generated for r/%s (batch %d): %q. Skipping.", subreddit, batchNo, result.Value())
			continue
		}

		idea := models.Idea{
			Subreddit:   subreddit,
			Text:        text,
			Batch:       batchNo,
			ModelName:   result.Model,
			GeneratedAt: d.now(),
		}
		if err := d.sink.Append(ctx, idea); err != nil {
			return fmt.Errorf("writing idea for r/%s (batch %d): %w", subreddit, batchNo, err)
		}

		report.Accepted++
		config.Logger.Infof("Unique idea from r/%s (batch %d) appended", subreddit, batchNo)

		exhausted := q.Consume()
		report.QuotaLeft = q.Remaining()
		if exhausted {
			break
		}
	}

	report.Exhausted = q.Exhausted()
	if report.Exhausted {
		config.Logger.Infof("Idea quota reached for r/%s: %d ideas after %d of %d batches", subreddit, q.Used(), report.Attempted, report.Batches)
	} else {
		config.Logger.Infof("Generated all possible ideas for r/%s (%d accepted, quota left %d)", subreddit, report.Accepted, report.QuotaLeft)
	}
	return nil
}
