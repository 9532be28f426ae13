package view

import (
	"context"
	"errors"
	"testing"

	"parley/client/internal/model"
)

func TestTopicLoadReady(t *testing.T) {
	gw := &fakeTopicGateway{
		listFn: func(ctx context.Context, query string) ([]model.Topic, error) {
			return []model.Topic{{ID: 1, Title: "Cats"}, {ID: 2, Title: "Dogs"}}, nil
		},
	}
	v := NewTopicView(gw, anonymous())

	if v.State() != Idle {
		t.Fatalf("fresh view should be idle, got %v", v.State())
	}
	if err := v.Load(context.Background(), ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v.State() != Ready {
		t.Errorf("expected ready, got %v", v.State())
	}
	topics := v.Topics()
	if len(topics) != 2 || topics[0].Title != "Cats" || topics[1].Title != "Dogs" {
		t.Errorf("cache should hold server order, got %+v", topics)
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	entered1 := make(chan struct{})
	entered2 := make(chan struct{})
	release1 := make(chan struct{})
	release2 := make(chan struct{})

	gw := &fakeTopicGateway{
		listFn: func(ctx context.Context, query string) ([]model.Topic, error) {
			switch query {
			case "first":
				close(entered1)
				<-release1
				return []model.Topic{{ID: 1, Title: "stale"}}, nil
			default:
				close(entered2)
				<-release2
				return []model.Topic{{ID: 2, Title: "fresh"}}, nil
			}
		},
	}
	v := NewTopicView(gw, anonymous())

	done1 := make(chan error, 1)
	done2 := make(chan error, 1)
	go func() { done1 <- v.Load(context.Background(), "first") }()
	<-entered1
	go func() { done2 <- v.Load(context.Background(), "second") }()
	<-entered2

	// The newer load resolves first and wins.
	close(release2)
	if err := <-done2; err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	// The older load resolves afterwards; its result must be discarded.
	close(release1)
	<-done1

	topics := v.Topics()
	if len(topics) != 1 || topics[0].Title != "fresh" {
		t.Fatalf("stale response overwrote the cache: %+v", topics)
	}
	if v.State() != Ready {
		t.Errorf("expected ready, got %v", v.State())
	}
}

func TestInvalidateSuppressesInflightLoad(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeTopicGateway{
		listFn: func(ctx context.Context, query string) ([]model.Topic, error) {
			close(entered)
			<-release
			return []model.Topic{{ID: 1, Title: "late"}}, nil
		},
	}
	v := NewTopicView(gw, anonymous())

	done := make(chan error, 1)
	go func() { done <- v.Load(context.Background(), "") }()
	<-entered
	v.Invalidate()
	close(release)
	<-done

	if len(v.Topics()) != 0 {
		t.Error("a torn-down scope applied an in-flight result")
	}
}

func TestFailedLoadPreservesCache(t *testing.T) {
	healthy := true
	gw := &fakeTopicGateway{
		listFn: func(ctx context.Context, query string) ([]model.Topic, error) {
			if !healthy {
				return nil, remoteErr("backend down")
			}
			return []model.Topic{{ID: 1, Title: "Cats"}}, nil
		},
	}
	v := NewTopicView(gw, anonymous())

	if err := v.Load(context.Background(), ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	healthy = false
	if err := v.Load(context.Background(), ""); err == nil {
		t.Fatal("expected load failure")
	}

	if v.State() != Failed {
		t.Errorf("expected failed, got %v", v.State())
	}
	if v.LastError() != "backend down" {
		t.Errorf("expected normalized message, got %q", v.LastError())
	}
	if topics := v.Topics(); len(topics) != 1 || topics[0].Title != "Cats" {
		t.Errorf("failed refresh blanked a populated view: %+v", topics)
	}
}

func TestCreateRequiresSession(t *testing.T) {
	gw := &fakeTopicGateway{}
	v := NewTopicView(gw, anonymous())

	_, err := v.Create(context.Background(), "Cats", "")
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if _, creates := gw.calls(); creates != 0 {
		t.Error("anonymous create reached the gateway")
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	gw := &fakeTopicGateway{}
	v := NewTopicView(gw, member(7))

	_, err := v.Create(context.Background(), "   ", "")
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, creates := gw.calls(); creates != 0 {
		t.Error("invalid input reached the gateway")
	}
}

func TestCreateAppendsServerEntity(t *testing.T) {
	gw := &fakeTopicGateway{
		listFn: func(ctx context.Context, query string) ([]model.Topic, error) {
			return []model.Topic{{ID: 1, Title: "Dogs"}}, nil
		},
		createFn: func(ctx context.Context, in model.TopicInput, userID int) (model.Topic, error) {
			return model.Topic{ID: 2, Title: in.Title, Description: in.Description, CreatedByUserID: userID}, nil
		},
	}
	v := NewTopicView(gw, member(7))

	if err := v.Load(context.Background(), ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	created, err := v.Create(context.Background(), "Cats", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedByUserID != 7 {
		t.Errorf("expected creator 7, got %d", created.CreatedByUserID)
	}

	topics := v.Topics()
	if len(topics) != 2 || topics[1].Title != "Cats" || topics[1].CreatedByUserID != 7 {
		t.Errorf("created topic not appended: %+v", topics)
	}
}

func TestCreateFailureLeavesCache(t *testing.T) {
	gw := &fakeTopicGateway{
		listFn: func(ctx context.Context, query string) ([]model.Topic, error) {
			return []model.Topic{{ID: 1, Title: "Dogs"}}, nil
		},
		createFn: func(ctx context.Context, in model.TopicInput, userID int) (model.Topic, error) {
			return model.Topic{}, remoteErr("nope")
		},
	}
	v := NewTopicView(gw, member(7))

	if err := v.Load(context.Background(), ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := v.Create(context.Background(), "Cats", ""); err == nil {
		t.Fatal("expected create failure")
	}

	if topics := v.Topics(); len(topics) != 1 {
		t.Errorf("failed create changed the cache: %+v", topics)
	}
	if v.LastError() != "nope" {
		t.Errorf("expected normalized failure, got %q", v.LastError())
	}
	if v.State() != Ready {
		t.Errorf("mutation failure must not change load state, got %v", v.State())
	}
}

func TestSessionReadIsFresh(t *testing.T) {
	gw := &fakeTopicGateway{}
	sessions := anonymous()
	v := NewTopicView(gw, sessions)

	if _, err := v.Create(context.Background(), "Cats", ""); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}

	// A login after construction must be visible to the next call.
	sessions.set(&model.User{ID: 7, Username: "ada", Role: model.RoleMember})
	if _, err := v.Create(context.Background(), "Cats", ""); err != nil {
		t.Fatalf("Create after login failed: %v", err)
	}
}
