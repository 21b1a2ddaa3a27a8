package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"

	"github.com/tutorlog/tutorlog/api"
)

var groupColumns = []string{"id", "name", "slug", "description", "owner_id", "created_at"}

func expectFindGroup(mock sqlmock.Sqlmock, id, owner uint, name, slug string) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groups" WHERE "groups"."id" = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(groupColumns).AddRow(id, name, slug, nil, owner, time.Now()))
}

func TestUpdateGroupSlugConflict(t *testing.T) {
	engine, mock := newTestEngine(t)

	expectFindGroup(mock, 1, 7, "algebra", "algebra")
	mock.ExpectExec(`UPDATE "groups" SET`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	req := httptest.NewRequest(http.MethodPut, "/api/group/1", strings.NewReader(`{"name":"physics"}`))
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409 on duplicate slug, got %d: %s", rec.Code, rec.Body.String())
	}
	status := api.Status{}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal("Failed to decode error envelope:", err)
	}
	if status.Ok || status.Error == "" {
		t.Errorf("Expected an error envelope, got %+v", status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetGroupOwnedByAnotherUser(t *testing.T) {
	engine, mock := newTestEngine(t)

	expectFindGroup(mock, 1, 7, "algebra", "algebra")

	req := httptest.NewRequest(http.MethodGet, "/api/group/1", nil)
	req.Header.Set("X-User-ID", "8")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for a foreign group, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetGroupNotFound(t *testing.T) {
	engine, mock := newTestEngine(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groups" WHERE "groups"."id" = $1`)).
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows(groupColumns))

	req := httptest.NewRequest(http.MethodGet, "/api/group/42", nil)
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for an unknown group, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGroupRequiresUserIdentity(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/group/1", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without user identity, got %d: %s", rec.Code, rec.Body.String())
	}
}
