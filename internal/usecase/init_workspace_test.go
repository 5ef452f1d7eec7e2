package usecase

import (
	"errors"
	"testing"
)

type fakeInitializer struct {
	root  string
	force bool
	err   error
}

func (f *fakeInitializer) Init(root string, force bool) error {
	f.root = root
	f.force = force
	return f.err
}

func TestInitWorkspace_PassesThrough(t *testing.T) {
	fake := &fakeInitializer{}
	uc := NewInitWorkspace(fake)

	if err := uc.Execute("/tmp/ws", true); err != nil {
		t.Fatal(err)
	}
	if fake.root != "/tmp/ws" || !fake.force {
		t.Fatalf("unexpected call: root=%q force=%t", fake.root, fake.force)
	}
}

func TestInitWorkspace_PropagatesError(t *testing.T) {
	want := errors.New("scaffold failed")
	uc := NewInitWorkspace(&fakeInitializer{err: want})

	if err := uc.Execute("/tmp/ws", false); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
