package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_FIFOOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first"`)},
		MockResponse{Content: json.RawMessage(`"second"`)},
	)

	r1, err := mock.Generate(context.Background(), Request{Prompt: "a"})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := mock.Generate(context.Background(), Request{Prompt: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if string(r1.Content) != `"first"` || string(r2.Content) != `"second"` {
		t.Errorf("responses out of order: %s, %s", r1.Content, r2.Content)
	}
	if mock.CallCount() != 2 {
		t.Errorf("call count = %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.Prompt != "b" {
		t.Errorf("last call = %+v", last)
	}
}

func TestMockProvider_EmptyQueueUnavailable(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{Prompt: "a"})
	var unavailable *ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestMockProvider_CannedError(t *testing.T) {
	wantErr := &ErrRateLimit{}
	mock := NewMockProvider(MockResponse{Err: wantErr})
	_, err := mock.Generate(context.Background(), Request{Prompt: "a"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("want canned error, got %v", err)
	}
}
