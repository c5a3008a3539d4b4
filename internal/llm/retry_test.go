package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// failNTimesProvider fails with err until n calls pass, then succeeds.
type failNTimesProvider struct {
	n     int
	err   error
	calls int
}

func (p *failNTimesProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	p.calls++
	if p.calls <= p.n {
		return nil, p.err
	}
	return &Response{Content: json.RawMessage(`{}`), Model: "test"}, nil
}

func (p *failNTimesProvider) ModelID() string { return "test" }

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &failNTimesProvider{n: 2, err: &ErrUnavailable{Err: errors.New("503")}}
	p := WithRetry(inner, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if resp == nil || inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	inner := &failNTimesProvider{n: 10, err: &ErrRateLimit{}}
	p := WithRetry(inner, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("want last rate-limit error, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("calls = %d, want 3", inner.calls)
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	inner := &failNTimesProvider{n: 10, err: &ErrInvalidResponse{Err: errors.New("schema")}}
	p := WithRetry(inner, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("want ErrInvalidResponse, got %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", inner.calls)
	}
}

func TestRetry_TruncationNotRetried(t *testing.T) {
	inner := &failNTimesProvider{n: 10, err: &ErrTruncated{}}
	p := WithRetry(inner, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	var trunc *ErrTruncated
	if !errors.As(err, &trunc) {
		t.Fatalf("want ErrTruncated, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}

func TestRetry_ContextCancelNotRetried(t *testing.T) {
	inner := &failNTimesProvider{n: 10, err: context.Canceled}
	p := WithRetry(inner, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	inner := &failNTimesProvider{
		n:   1,
		err: &ErrRateLimit{RetryAfter: 5 * time.Millisecond},
	}
	p := WithRetry(inner, fastRetry(3))

	start := time.Now()
	if _, err := p.Generate(context.Background(), Request{Prompt: "x"}); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("retried after %v, before the server's RetryAfter", elapsed)
	}
}
