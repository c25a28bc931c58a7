package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/presencelabs/facemark/internal/facemark/types"
	sqlitestore "github.com/presencelabs/facemark/internal/facemark/store/sqlite"
)

// ═══════════════════════════════════════════════════════════════════════════
// InsertIfAbsent — uniqueness boundary
// ═══════════════════════════════════════════════════════════════════════════

func TestAttendanceStore_InsertIfAbsent_FirstInsertWins(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	id := seedIdentity(t, conn, "R100", "Alice")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	inserted, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
		IdentityID: id,
		Day:        "2024-01-10",
		Clock:      "09:00:00",
	})
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if !inserted {
		t.Fatal("expected first insert to report inserted=true")
	}

	// Second attempt, later time — must be rejected without touching the row.
	inserted, err = as.InsertIfAbsent(ctx, types.AttendanceRecord{
		IdentityID: id,
		Day:        "2024-01-10",
		Clock:      "14:30:00",
	})
	if err != nil {
		t.Fatalf("second InsertIfAbsent: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate insert to report inserted=false")
	}

	rows, err := as.ListByDate(ctx, "2024-01-10")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(rows))
	}
	if rows[0].Clock != "09:00:00" {
		t.Errorf("expected stored time to remain 09:00:00, got %s", rows[0].Clock)
	}
}

func TestAttendanceStore_InsertIfAbsent_RepeatedCallsLeaveOneRow(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	id := seedIdentity(t, conn, "R100", "Alice")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
			IdentityID: id,
			Day:        "2024-01-10",
			Clock:      time.Date(2024, 1, 10, 9, i, 0, 0, time.UTC).Format(types.ClockLayout),
		})
		if err != nil {
			t.Fatalf("InsertIfAbsent #%d: %v", i, err)
		}
	}

	var count int
	if err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE identity_id = ? AND day = ?`, id, "2024-01-10",
	).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row regardless of attempts, got %d", count)
	}
}

func TestAttendanceStore_InsertIfAbsent_DifferentDaysBothRecorded(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	id := seedIdentity(t, conn, "R100", "Alice")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	for _, day := range []string{"2024-01-10", "2024-01-11"} {
		inserted, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
			IdentityID: id,
			Day:        day,
			Clock:      "09:00:00",
		})
		if err != nil {
			t.Fatalf("InsertIfAbsent %s: %v", day, err)
		}
		if !inserted {
			t.Errorf("expected insert for %s to succeed", day)
		}
	}

	n, err := as.CountForIdentity(ctx, id)
	if err != nil {
		t.Fatalf("CountForIdentity: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 records across days, got %d", n)
	}
}

func TestAttendanceStore_InsertIfAbsent_DefaultsStatusPresent(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	id := seedIdentity(t, conn, "R100", "Alice")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	if _, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
		IdentityID: id,
		Day:        "2024-01-10",
		Clock:      "09:00:00",
	}); err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}

	rows, err := as.ListByDate(ctx, "2024-01-10")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if rows[0].Status != types.StatusPresent {
		t.Errorf("expected status Present, got %s", rows[0].Status)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Query ordering
// ═══════════════════════════════════════════════════════════════════════════

func TestAttendanceStore_ListByDate_OrderedByClockAscending(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	alice := seedIdentity(t, conn, "R100", "Alice")
	bob := seedIdentity(t, conn, "R101", "Bob")
	carol := seedIdentity(t, conn, "R102", "Carol")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	inserts := []struct {
		id    int64
		clock string
	}{
		{bob, "10:15:00"},
		{alice, "08:05:00"},
		{carol, "09:30:00"},
	}
	for _, in := range inserts {
		if _, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
			IdentityID: in.id, Day: "2024-01-10", Clock: in.clock,
		}); err != nil {
			t.Fatalf("InsertIfAbsent: %v", err)
		}
	}

	rows, err := as.ListByDate(ctx, "2024-01-10")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []string{"08:05:00", "09:30:00", "10:15:00"}
	for i, clock := range want {
		if rows[i].Clock != clock {
			t.Errorf("row %d: expected clock %s, got %s", i, clock, rows[i].Clock)
		}
	}
}

func TestAttendanceStore_ListAll_OrderedByDayThenClockDescending(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	alice := seedIdentity(t, conn, "R100", "Alice")
	bob := seedIdentity(t, conn, "R101", "Bob")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	inserts := []struct {
		id    int64
		day   string
		clock string
	}{
		{alice, "2024-01-09", "09:00:00"},
		{bob, "2024-01-09", "10:00:00"},
		{alice, "2024-01-10", "08:30:00"},
		{bob, "2024-01-10", "09:45:00"},
	}
	for _, in := range inserts {
		if _, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
			IdentityID: in.id, Day: in.day, Clock: in.clock,
		}); err != nil {
			t.Fatalf("InsertIfAbsent: %v", err)
		}
	}

	rows, err := as.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	want := []struct {
		day   string
		clock string
	}{
		{"2024-01-10", "09:45:00"},
		{"2024-01-10", "08:30:00"},
		{"2024-01-09", "10:00:00"},
		{"2024-01-09", "09:00:00"},
	}
	for i, wrow := range want {
		if rows[i].Day != wrow.day || rows[i].Clock != wrow.clock {
			t.Errorf("row %d: expected %s %s, got %s %s",
				i, wrow.day, wrow.clock, rows[i].Day, rows[i].Clock)
		}
	}
}

func TestAttendanceStore_ListByDate_JoinsIdentityColumns(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	id := seedIdentity(t, conn, "R100", "Alice")
	as := sqlitestore.NewAttendanceStore(conn, w)
	ctx := context.Background()

	if _, err := as.InsertIfAbsent(ctx, types.AttendanceRecord{
		IdentityID: id, Day: "2024-01-10", Clock: "09:00:00",
	}); err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}

	rows, err := as.ListByDate(ctx, "2024-01-10")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if rows[0].DisplayName != "Alice" || rows[0].ExternalID != "R100" {
		t.Errorf("expected Alice/R100, got %s/%s", rows[0].DisplayName, rows[0].ExternalID)
	}
}

func TestAttendanceStore_CountForIdentity_ZeroWhenNone(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	id := seedIdentity(t, conn, "R100", "Alice")
	as := sqlitestore.NewAttendanceStore(conn, w)

	n, err := as.CountForIdentity(context.Background(), id)
	if err != nil {
		t.Fatalf("CountForIdentity: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}
