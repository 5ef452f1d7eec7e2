package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "gitcli.push",
		Kind: KindExecution,
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindExecution {
		t.Fatalf("expected kind %s", KindExecution)
	}
}

func TestOpErrorMessageIncludesPath(t *testing.T) {
	err := &OpError{
		Op:   "summarycsv.open",
		Kind: KindNotFound,
		Path: "results/sentiment_summary_latest.csv",
		Err:  ErrNotFound,
	}
	msg := err.Error()
	if msg == "" || !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error value: %q", msg)
	}
	if want := "path=results/sentiment_summary_latest.csv"; !strings.Contains(msg, want) {
		t.Fatalf("expected %q in %q", want, msg)
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{Op: "pipeline.prereq", Kind: KindNotFound}

	if !IsKind(err, KindNotFound) {
		t.Fatal("expected IsKind to match")
	}
	if IsKind(err, KindExecution) {
		t.Fatal("expected IsKind to reject other kinds")
	}
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Fatal("expected IsKind to reject non-OpError")
	}
}
