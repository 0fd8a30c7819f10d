package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(pgx.ErrNoRows) {
		t.Error("expected pgx.ErrNoRows to classify as not found")
	}
	if !IsNotFound(fmt.Errorf("get patient: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped ErrNoRows to classify as not found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("expected generic error not to classify as not found")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	if !IsDuplicateKey(dup) {
		t.Error("expected 23505 to classify as duplicate key")
	}
	if IsDuplicateKey(&pgconn.PgError{Code: "42P01"}) {
		t.Error("expected 42P01 not to classify as duplicate key")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Error("expected generic error not to classify as duplicate key")
	}
}

func TestIsUndefinedTable(t *testing.T) {
	if !IsUndefinedTable(&pgconn.PgError{Code: "42P01"}) {
		t.Error("expected 42P01 to classify as undefined table")
	}
	if IsUndefinedTable(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "42P01"})) == false {
		t.Error("expected wrapped 42P01 to classify as undefined table")
	}
	if IsUndefinedTable(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected 23505 not to classify as undefined table")
	}
}
