package quota

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"idea-miner/config"
)

// RequestLimiter 는 LLM 호출에 대한 분당/일일 한도를 관리한다.
// 프로세스 하나가 한 번 실행되는 전제로 인메모리로 동작하며, 재시작되면 카운터가 초기화된다.
type RequestLimiter struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	dailyLimit int
	usedToday  int
	dayKey     string

	now func() time.Time
}

// NewRequestLimiterFromConfig 는 config.yaml 의 llm_quota 설정을 기반으로 RequestLimiter 를 생성한다.
// 설정 값이 0 이하인 경우에는 해당 방향의 제한을 두지 않는다.
func NewRequestLimiterFromConfig(cfg config.AppConfig) *RequestLimiter {
	return NewRequestLimiter(cfg.LLMQuota.RequestsPerMinute, cfg.LLMQuota.RequestsPerDay)
}

func NewRequestLimiter(requestsPerMinute, requestsPerDay int) *RequestLimiter {
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}

	return &RequestLimiter{
		limiter:    rate.NewLimiter(limit, 1),
		dailyLimit: requestsPerDay,
		now:        time.Now,
	}
}

// WaitAndReserve 는 LLM 호출 전에 분당/일일 한도를 적용한다.
// - 일일 한도를 초과한 경우: (false, nil) 을 반환하고 호출자는 LLM 호출을 스킵해야 한다.
// - 컨텍스트 취소 시: (false, error)를 반환한다. 예약했던 일일 카운트는 되돌린다.
func (l *RequestLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	if !l.reserveDaily() {
		return false, nil
	}

	if err := l.limiter.Wait(ctx); err != nil {
		l.releaseDaily()
		return false, err
	}
	return true, nil
}

// Used 는 오늘 예약된 호출 수를 반환한다.
func (l *RequestLimiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollDay()
	return l.usedToday
}

func (l *RequestLimiter) reserveDaily() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollDay()
	if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
		return false
	}
	l.usedToday++
	return true
}

func (l *RequestLimiter) releaseDaily() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.usedToday > 0 {
		l.usedToday--
	}
}

// rollDay 는 UTC 날짜가 바뀌면 일일 카운터를 초기화한다. l.mu 를 잡은 상태에서 호출해야 한다.
func (l *RequestLimiter) rollDay() {
	todayKey := l.now().UTC().Format("2006-01-02")
	if l.dayKey != todayKey {
		l.dayKey = todayKey
		l.usedToday = 0
	}
}
