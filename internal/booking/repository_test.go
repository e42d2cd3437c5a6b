package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func bookingRows(id, studioID, sessionID uuid.UUID, status, token string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "studio_id", "session_id", "first_name", "last_name", "email",
		"phone", "status", "cancel_token", "attendance_status", "created_at",
	}).AddRow(id, studioID, sessionID, "Maya", "Lindqvist", "maya@example.com",
		"", status, token, "not_checked_in", now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()
	studioID := uuid.New()
	sessionID := uuid.New()
	token := uuid.NewString()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), studioID, sessionID, "Maya", "Lindqvist", "maya@example.com", "", "confirmed", token, 10).
		WillReturnRows(bookingRows(id, studioID, sessionID, "confirmed", token, now))

	b, err := repo.Create(context.Background(), CreateParams{
		StudioID:    studioID,
		SessionID:   sessionID,
		FirstName:   "Maya",
		LastName:    "Lindqvist",
		Email:       "maya@example.com",
		Status:      "confirmed",
		CancelToken: token,
		Capacity:    10,
	})
	require.NoError(t, err)
	require.Equal(t, id, b.ID)
	require.Equal(t, "confirmed", b.Status)
}

func TestRepository_Create_CapacityRace(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// Conditional insert matched no row: the count check failed inside
	// the statement.
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Create(context.Background(), CreateParams{
		StudioID:    uuid.New(),
		SessionID:   uuid.New(),
		Email:       "maya@example.com",
		Status:      "confirmed",
		CancelToken: uuid.NewString(),
		Capacity:    1,
	})
	require.ErrorIs(t, err, ErrCapacityRace)
}

func TestRepository_Create_DuplicateRow(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), CreateParams{
		StudioID:    uuid.New(),
		SessionID:   uuid.New(),
		Email:       "maya@example.com",
		Status:      "pending",
		CancelToken: uuid.NewString(),
		Capacity:    10,
	})
	require.ErrorIs(t, err, ErrDuplicateRow)
}

func TestRepository_GetDetailsByToken_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs("no-such-token").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetDetailsByToken(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrBookingMissing)
}

func TestRepository_CountActiveForSession(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	sessionID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status IN ('pending', 'confirmed')")).
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountActiveForSession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, 7, count)
}

func TestRepository_HasActiveBookingForEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	sessionID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(sessionID, "maya@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasActiveBookingForEmail(context.Background(), sessionID, "maya@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRepository_IsReturningCustomer(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	studioID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(studioID, "maya@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	returning, err := repo.IsReturningCustomer(context.Background(), studioID, "maya@example.com")
	require.NoError(t, err)
	require.False(t, returning)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()

	// success case
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1 AND status = ANY($3)")).
		WithArgs(id, "confirmed", pq.Array([]string{"pending"})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, "confirmed", "pending")
	require.NoError(t, err)

	// failure case: booking was not in an expected status
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1 AND status = ANY($3)")).
		WithArgs(id, "confirmed", pq.Array([]string{"pending"})).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), id, "confirmed", "pending")
	require.ErrorIs(t, err, ErrNoMatchingStatus)
}

func TestRepository_UpdateAttendance(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET attendance_status = $2 WHERE id = $1 AND status != 'cancelled'")).
		WithArgs(id, "present").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAttendance(context.Background(), id, "present")
	require.NoError(t, err)

	// cancelled or missing booking
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET attendance_status = $2 WHERE id = $1 AND status != 'cancelled'")).
		WithArgs(id, "no_show").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateAttendance(context.Background(), id, "no_show")
	require.ErrorIs(t, err, ErrBookingGoneOrCancelled)
}

func TestRepository_List_Filters(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	sessionID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "studio_id", "session_id", "first_name", "last_name", "email",
		"phone", "status", "cancel_token", "attendance_status", "created_at",
		"session_title", "session_starts_at", "session_duration", "session_capacity", "studio_name",
	}).AddRow(uuid.New(), uuid.New(), sessionID, "Maya", "Lindqvist", "maya@example.com",
		"", "confirmed", uuid.NewString(), "not_checked_in", time.Now(),
		"Morning Flow", time.Now().Add(24*time.Hour), 60, 10, "Lotus Studio")

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(sessionID, "confirmed").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), ListFilter{
		SessionID: &sessionID,
		Status:    "confirmed",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Morning Flow", got[0].SessionTitle)
	require.Equal(t, 10, got[0].SessionCapacity)
}
