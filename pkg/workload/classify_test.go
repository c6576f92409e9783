package workload

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestClassifyNilIsOK(t *testing.T) {
	sym, tag := classify(nil)
	if sym != SymbolOK || tag != "" {
		t.Fatalf("got (%c, %q)", sym, tag)
	}
}

func TestClassifyPgxSyntaxError(t *testing.T) {
	err := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	sym, tag := classify(err)
	if sym != SymbolSyntax {
		t.Fatalf("got symbol %c, want S", sym)
	}
	if tag != "SyntaxError" {
		t.Fatalf("got tag %q", tag)
	}
}

func TestClassifyPqSyntaxError(t *testing.T) {
	err := &pq.Error{Code: "42601", Message: "syntax error"}
	sym, _ := classify(err)
	if sym != SymbolSyntax {
		t.Fatalf("got symbol %c, want S", sym)
	}
}

func TestClassifyConnectionClassIsCrash(t *testing.T) {
	err := &pgconn.PgError{Code: "08006", Message: "connection failure"}
	sym, tag := classify(err)
	if sym != SymbolCrash {
		t.Fatalf("got symbol %c, want C", sym)
	}
	if tag != "Crash/ConnectionLost" {
		t.Fatalf("got tag %q", tag)
	}
}

func TestClassifyQueryCanceledIsTimeout(t *testing.T) {
	err := &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}
	sym, tag := classify(err)
	if sym != SymbolTimeout {
		t.Fatalf("got symbol %c, want t", sym)
	}
	if tag != "Timeout" {
		t.Fatalf("got tag %q", tag)
	}
}

func TestClassifyDeadlineExceededIsTimeout(t *testing.T) {
	sym, tag := classify(context.DeadlineExceeded)
	if sym != SymbolTimeout {
		t.Fatalf("got symbol %c, want t", sym)
	}
	if tag != "Timeout" {
		t.Fatalf("got tag %q", tag)
	}
}

func TestClassifyEOFIsCrash(t *testing.T) {
	sym, tag := classify(io.ErrUnexpectedEOF)
	if sym != SymbolCrash {
		t.Fatalf("got symbol %c, want C", sym)
	}
	if tag != "Crash/ConnectionLost" {
		t.Fatalf("got tag %q", tag)
	}
}

func TestClassifyUnknownErrorIsException(t *testing.T) {
	sym, tag := classify(errors.New("something else"))
	if sym != SymbolException {
		t.Fatalf("got symbol %c, want e", sym)
	}
	if tag == "" {
		t.Fatal("expected non-empty tag for unknown error")
	}
}
