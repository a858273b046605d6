package pgsql

import (
	"fmt"

	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories.
// Lifecycle writes are single-row by design, so there is no shared
// transaction plumbing here.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// buildStatusSet turns the set fields of a StatusUpdate into SQL SET
// clauses and their positional arguments. Unset fields are left out of
// the statement entirely, so a pickup write never touches archive
// columns and vice versa.
func buildStatusSet(fields portsrepo.StatusUpdate) ([]string, []interface{}) {
	var set []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.IsPickedUp != nil {
		add("is_picked_up", *fields.IsPickedUp)
	}
	if fields.PickedUpAt != nil {
		add("picked_up_at", *fields.PickedUpAt)
	}
	if fields.IsArchived != nil {
		add("is_archived", *fields.IsArchived)
	}
	if fields.ArchivedAt != nil {
		add("archived_at", *fields.ArchivedAt)
	}
	if fields.ArchiveReason != nil {
		add("archive_reason", *fields.ArchiveReason)
	}
	return set, args
}
