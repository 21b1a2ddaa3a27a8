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

	"github.com/tutorlog/tutorlog/api"
)

var eventColumns = []string{
	"id", "title", "description", "event_type", "start_time", "end_time",
	"repeat_pattern", "repeat_until", "owner_id", "created_at", "updated_at",
}

func expectFindEvent(mock sqlmock.Sqlmock, id, owner uint, pattern interface{}) {
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "events" WHERE "events"."id" = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(id, "algebra", nil, "repeat", now, now.Add(time.Hour), pattern, nil, owner, now, now))
}

func TestReplaceRepeatDays(t *testing.T) {
	engine, mock := newTestEngine(t)

	expectFindEvent(mock, 1, 7, "weekly")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "event_repeat_days" WHERE event_id = $1`)).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "event_repeat_days"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5).AddRow(6))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "event_repeat_days" WHERE event_id = $1`)).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "day_of_week"}).
			AddRow(5, 1, 1).AddRow(6, 1, 3))

	req := httptest.NewRequest(http.MethodPut, "/api/event/1/repeat-days", strings.NewReader(`{"days":[1,3]}`))
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	res := api.RepeatDaysResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal("Failed to decode response:", err)
	}
	if len(res.Days) != 2 || res.Days[0].DayOfWeek != 1 || res.Days[1].DayOfWeek != 3 {
		t.Errorf("Unexpected repeat days: %+v", res.Days)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReconcileEventPupilsClearsRoster(t *testing.T) {
	engine, mock := newTestEngine(t)

	expectFindEvent(mock, 1, 7, nil)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "event_pupils" WHERE event_id = $1`)).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "event_pupils" WHERE event_id = $1`)).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "pupil_id", "added_at"}))

	req := httptest.NewRequest(http.MethodPut, "/api/event/1/pupils", strings.NewReader(`{"pupil_ids":[]}`))
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	res := api.EventPupilsResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal("Failed to decode response:", err)
	}
	if len(res.Pupils) != 0 {
		t.Errorf("Expected an empty roster, got %+v", res.Pupils)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
