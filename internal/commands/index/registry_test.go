package indexcmd

import (
	"errors"
	"testing"

	"github.com/goliatone/go-folio/internal/commands/fixtures"
)

func TestRegisterIndexCommandsRecordsHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()

	set, err := RegisterIndexCommands(reg, &fixtures.StubBuilder{}, nil)
	if err != nil {
		t.Fatalf("RegisterIndexCommands: %v", err)
	}
	if set.Build == nil || set.Verify == nil {
		t.Fatalf("expected both handlers, got %+v", set)
	}
	if len(reg.Handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(reg.Handlers))
	}
	if _, ok := reg.Handlers[0].(*BuildIndexHandler); !ok {
		t.Fatalf("expected build handler first, got %T", reg.Handlers[0])
	}
	if _, ok := reg.Handlers[1].(*VerifyIndexHandler); !ok {
		t.Fatalf("expected verify handler second, got %T", reg.Handlers[1])
	}
}

func TestRegisterIndexCommandsWithoutRegistry(t *testing.T) {
	set, err := RegisterIndexCommands(nil, &fixtures.StubBuilder{}, nil)
	if err != nil || set == nil {
		t.Fatalf("expected handlers without registry, got %v", err)
	}
}

func TestRegisterIndexCommandsPropagatesErrors(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")

	if _, err := RegisterIndexCommands(reg, &fixtures.StubBuilder{}, nil); err == nil {
		t.Fatal("expected registration error")
	}
	if _, err := RegisterIndexCommands(reg, nil, nil); err == nil {
		t.Fatal("expected error for nil builder")
	}
}
