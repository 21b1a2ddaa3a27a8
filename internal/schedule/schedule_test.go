package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"

	"github.com/tutorlog/tutorlog/internal/models"
)

const timeLayout = "02-01-2006 15:04"

func mustParse(t time.Time, err error) time.Time {
	if err != nil {
		panic(err)
	}
	return t
}

func at(timePoint string) time.Time {
	return mustParse(time.Parse(timeLayout, timePoint))
}

func day(date string) time.Time {
	return mustParse(time.Parse("02-01-2006", date))
}

type eventFixture struct {
	Title   string `yaml:"title"`
	Type    string `yaml:"type"`
	Pattern string `yaml:"pattern"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Until   string `yaml:"until"`
	Days    []int  `yaml:"days"`
}

func (f *eventFixture) toEvent(id uint) models.Event {
	event := models.Event{
		ID:        id,
		Title:     f.Title,
		EventType: f.Type,
		StartTime: at(f.Start),
		EndTime:   at(f.End),
	}
	if f.Pattern != "" {
		pattern := f.Pattern
		event.RepeatPattern = &pattern
	}
	if f.Until != "" {
		until := day(f.Until)
		event.RepeatUntil = &until
	}
	return event
}

func loadFixtures(t *testing.T, raw string) ([]models.Event, map[uint][]int) {
	t.Helper()
	fixtures := []eventFixture{}
	if err := yaml.Unmarshal([]byte(raw), &fixtures); err != nil {
		t.Fatal("Failed to parse fixtures:", err)
	}
	events := make([]models.Event, 0, len(fixtures))
	days := make(map[uint][]int)
	for i, fixture := range fixtures {
		id := uint(i + 1)
		events = append(events, fixture.toEvent(id))
		if len(fixture.Days) > 0 {
			days[id] = fixture.Days
		}
	}
	return events, days
}

func instanceDates(instances []Instance) []time.Time {
	dates := make([]time.Time, 0, len(instances))
	for _, instance := range instances {
		dates = append(dates, instance.InstanceDate)
	}
	return dates
}

func TestSingleEvent(t *testing.T) {
	events, days := loadFixtures(t, `
- title: physics intro
  type: once
  start: 15-03-2021 16:00
  end: 15-03-2021 17:00
`)

	instances := Expand(&events[0], days[1], day("01-03-2021"), day("31-03-2021"))
	if len(instances) != 1 {
		t.Fatalf("Expected a single instance, got %d", len(instances))
	}
	if instances[0].IsRepeatInstance {
		t.Error("One-off event must not be marked as a repeat instance")
	}
	if !instances[0].StartTime.Equal(at("15-03-2021 16:00")) {
		t.Errorf("Unexpected start time: %v", instances[0].StartTime)
	}

	instances = Expand(&events[0], days[1], day("01-04-2021"), day("30-04-2021"))
	if len(instances) != 0 {
		t.Fatalf("Expected no instances outside the range, got %d", len(instances))
	}
}

func TestDailyExpansion(t *testing.T) {
	events, days := loadFixtures(t, `
- title: morning drills
  type: repeat
  pattern: daily
  start: 10-03-2021 10:00
  end: 10-03-2021 10:30
`)

	instances := Expand(&events[0], days[1], day("08-03-2021"), day("14-03-2021"))
	expected := []time.Time{
		day("10-03-2021"), day("11-03-2021"), day("12-03-2021"),
		day("13-03-2021"), day("14-03-2021"),
	}
	if diff := cmp.Diff(expected, instanceDates(instances)); diff != "" {
		t.Errorf("Unexpected instance dates (-want +got):\n%s", diff)
	}
	for _, instance := range instances {
		if instance.StartTime.Hour() != 10 || instance.EndTime.Minute() != 30 {
			t.Errorf("Instance must keep the event clock times, got %v..%v", instance.StartTime, instance.EndTime)
		}
		if !instance.IsRepeatInstance {
			t.Error("Expanded occurrence must be marked as a repeat instance")
		}
	}
}

func TestDailyRepeatUntil(t *testing.T) {
	events, days := loadFixtures(t, `
- title: exam prep
  type: repeat
  pattern: daily
  start: 10-03-2021 10:00
  end: 10-03-2021 11:00
  until: 12-03-2021
`)

	instances := Expand(&events[0], days[1], day("01-03-2021"), day("31-03-2021"))
	expected := []time.Time{day("10-03-2021"), day("11-03-2021"), day("12-03-2021")}
	if diff := cmp.Diff(expected, instanceDates(instances)); diff != "" {
		t.Errorf("Unexpected instance dates (-want +got):\n%s", diff)
	}
}

func TestWeeklyOnConfiguredDays(t *testing.T) {
	// 01-03-2021 is a Monday
	events, days := loadFixtures(t, `
- title: algebra
  type: repeat
  pattern: weekly
  start: 01-03-2021 18:00
  end: 01-03-2021 19:30
  days: [1, 3]
`)

	instances := Expand(&events[0], days[1], day("01-03-2021"), day("14-03-2021"))
	expected := []time.Time{
		day("01-03-2021"), day("03-03-2021"), day("08-03-2021"), day("10-03-2021"),
	}
	if diff := cmp.Diff(expected, instanceDates(instances)); diff != "" {
		t.Errorf("Unexpected instance dates (-want +got):\n%s", diff)
	}
}

func TestWeeklyFallsBackToOwnWeekday(t *testing.T) {
	events, days := loadFixtures(t, `
- title: geometry
  type: repeat
  pattern: weekly
  start: 02-03-2021 18:00
  end: 02-03-2021 19:00
`)

	instances := Expand(&events[0], days[1], day("01-03-2021"), day("14-03-2021"))
	expected := []time.Time{day("02-03-2021"), day("09-03-2021")}
	if diff := cmp.Diff(expected, instanceDates(instances)); diff != "" {
		t.Errorf("Unexpected instance dates (-want +got):\n%s", diff)
	}
}

func TestMonthlySkipsShortMonths(t *testing.T) {
	events, days := loadFixtures(t, `
- title: progress review
  type: repeat
  pattern: monthly
  start: 31-01-2021 09:00
  end: 31-01-2021 10:00
`)

	instances := Expand(&events[0], days[1], day("01-01-2021"), day("30-04-2021"))
	expected := []time.Time{day("31-01-2021"), day("31-03-2021")}
	if diff := cmp.Diff(expected, instanceDates(instances)); diff != "" {
		t.Errorf("Unexpected instance dates (-want +got):\n%s", diff)
	}
}

func TestMonthlyStartsAtEventDate(t *testing.T) {
	events, days := loadFixtures(t, `
- title: billing day
  type: repeat
  pattern: monthly
  start: 10-03-2021 09:00
  end: 10-03-2021 09:30
`)

	// range opens before the event exists
	instances := Expand(&events[0], days[1], day("01-01-2021"), day("30-04-2021"))
	expected := []time.Time{day("10-03-2021"), day("10-04-2021")}
	if diff := cmp.Diff(expected, instanceDates(instances)); diff != "" {
		t.Errorf("Unexpected instance dates (-want +got):\n%s", diff)
	}
}

func TestExpandAllSortsByStartTime(t *testing.T) {
	events, days := loadFixtures(t, `
- title: algebra
  type: repeat
  pattern: weekly
  start: 01-03-2021 18:00
  end: 01-03-2021 19:30
  days: [1, 3]
- title: physics
  type: once
  start: 09-03-2021 10:00
  end: 09-03-2021 11:00
`)

	instances := ExpandAll(events, days, day("01-03-2021"), day("14-03-2021"))
	titles := make([]string, 0, len(instances))
	for _, instance := range instances {
		titles = append(titles, instance.Title)
	}
	expected := []string{"algebra", "algebra", "algebra", "physics", "algebra"}
	if diff := cmp.Diff(expected, titles); diff != "" {
		t.Errorf("Unexpected instance order (-want +got):\n%s", diff)
	}
	for i := 1; i < len(instances); i++ {
		if instances[i].StartTime.Before(instances[i-1].StartTime) {
			t.Fatalf("Instances are not sorted at position %d", i)
		}
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(at("15-12-2021 13:37"))
	if !from.Equal(day("01-12-2021")) || !to.Equal(day("31-12-2021")) {
		t.Errorf("Unexpected month range: %v..%v", from, to)
	}

	from, to = MonthRange(at("01-02-2020 00:00"))
	if !to.Equal(day("29-02-2020")) {
		t.Errorf("Expected leap february to end on the 29th, got %v", to)
	}
}
