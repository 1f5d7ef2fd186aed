package repository

import (
	"context"
	"errors"

	"venue-booking/internal/domain/booking"
	"venue-booking/internal/infra"
	"venue-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes observed on the reserve path.
const (
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeLockNotAvailable   = "55P03"
)

// LedgerRepository writes availability intervals. The overlap check is NOT
// application code: the table's gist exclusion constraint rejects a
// conflicting insert at commit time, so check and insert are one atomic
// unit no matter how many writers race.
type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(dbtx db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: dbtx}
}

const reserveSQL = `
INSERT INTO availability_intervals (booking_id, venue_id, during)
VALUES ($1, $2, tstzrange($3, $4, '[)'))`

func (r *LedgerRepository) Reserve(ctx context.Context, venueID uuid.UUID, slot booking.TimeSlot, bookingID uuid.UUID) error {
	_, err := r.db.Exec(ctx, reserveSQL, bookingID, venueID, slot.Start(), slot.End())
	if err != nil {
		switch pgErrCode(err) {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr("interval overlaps an active reservation", err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr("interval already reserved for booking", err, infra.KindDuplicateKey)
		case pgErrCodeLockNotAvailable:
			return infra.WrapRepoErr("venue calendar is contended", err, infra.KindLockTimeout)
		}
		return infra.WrapRepoErr("failed to reserve interval", err)
	}
	return nil
}

const releaseSQL = `
DELETE FROM availability_intervals
WHERE booking_id = $1`

func (r *LedgerRepository) Release(ctx context.Context, bookingID uuid.UUID) error {
	// Releasing an already-released interval is a no-op: cancellation owns
	// idempotency at the booking level.
	_, err := r.db.Exec(ctx, releaseSQL, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to release interval", err)
	}
	return nil
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
