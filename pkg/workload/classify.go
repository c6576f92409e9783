package workload

import (
	"context"
	"errors"
	"io"
	"net"
	"reflect"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE class prefixes used to route errors to a symbol. Both driver
// error types expose a "Code" string in this shape, so one switch serves
// both.
const (
	classSyntaxOrAccessRule = "42"
	classConnectionError    = "08"
)

// symbolTag is the fixed Tag string for every symbol except SymbolException,
// whose tag is the dynamic ExceptionClassName instead.
var symbolTag = map[Symbol]string{
	SymbolSyntax:  "SyntaxError",
	SymbolCrash:   "Crash/ConnectionLost",
	SymbolTimeout: "Timeout",
}

// classify maps a driver error (or nil, for success) into an Outcome
// symbol and tag. It never panics: any error type it does not recognize
// falls through to SymbolException tagged with its Go type name. Only
// SymbolException carries a dynamic tag; every other symbol's tag is the
// fixed string from symbolTag.
func classify(err error) (Symbol, string) {
	if err == nil {
		return SymbolOK, ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return SymbolTimeout, symbolTag[SymbolTimeout]
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sym := classifySQLState(pgErr.Code)
		if sym == SymbolException {
			return sym, goTypeName(err)
		}
		return sym, symbolTag[sym]
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		sym := classifySQLState(string(pqErr.Code))
		if sym == SymbolException {
			return sym, goTypeName(err)
		}
		return sym, symbolTag[sym]
	}

	if isConnectionLost(err) {
		return SymbolCrash, symbolTag[SymbolCrash]
	}

	return SymbolException, goTypeName(err)
}

func classifySQLState(code string) Symbol {
	if len(code) < 2 {
		return SymbolException
	}
	switch code[:2] {
	case classSyntaxOrAccessRule:
		return SymbolSyntax
	case classConnectionError:
		return SymbolCrash
	case "57":
		// operator_intervention class: includes query_canceled (57014).
		if code == "57014" {
			return SymbolTimeout
		}
		return SymbolCrash
	}
	return SymbolException
}

// isConnectionLost recognizes the handful of sentinel/structural errors
// pgx and the net package surface for transport-level failures that never
// produced a PgError.
func isConnectionLost(err error) bool {
	if errors.Is(err, pgconn.ErrNoBytesSent) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// goTypeName returns the unqualified Go type name of err's dynamic type,
// used as the tag for otherwise-unrecognized errors.
func goTypeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "error"
	}
	return t.Name()
}
