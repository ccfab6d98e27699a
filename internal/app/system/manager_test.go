package system

import (
	"context"
	"errors"
	"testing"
)

type recordingService struct {
	name     string
	startErr error
	events   *[]string
}

func (s recordingService) Name() string { return s.name }

func (s recordingService) Start(context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	*s.events = append(*s.events, "start:"+s.name)
	return nil
}

func (s recordingService) Stop(context.Context) error {
	*s.events = append(*s.events, "stop:"+s.name)
	return nil
}

func TestManager_StartStopOrder(t *testing.T) {
	var events []string
	m := NewManager()
	for _, name := range []string{"a", "b", "c"} {
		if err := m.Register(recordingService{name: name, events: &events}); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestManager_StartFailureUnwinds(t *testing.T) {
	var events []string
	m := NewManager()
	m.Register(recordingService{name: "a", events: &events})
	m.Register(recordingService{name: "b", events: &events, startErr: errors.New("boom")})

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail")
	}
	if len(events) != 2 || events[1] != "stop:a" {
		t.Fatalf("events = %v, want started services unwound", events)
	}
}

func TestManager_DuplicateName(t *testing.T) {
	var events []string
	m := NewManager()
	if err := m.Register(recordingService{name: "a", events: &events}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := m.Register(recordingService{name: "a", events: &events}); err == nil {
		t.Fatal("duplicate registration should fail")
	}
}

func TestNoopService(t *testing.T) {
	svc := NoopService{ServiceName: "templates"}
	if svc.Name() != "templates" {
		t.Errorf("Name() = %s", svc.Name())
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
