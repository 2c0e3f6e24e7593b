package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mandatedisrael/basefly/internal/domain"
)

// Repo implements domain.SearchRecorder. Writes are plain inserts; the
// pipeline treats every call as best-effort, so no transaction spans the
// two records of one search.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the recorder tables if they do not exist.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range SchemaSQL {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) SaveFlightData(ctx context.Context, rec domain.FlightRecord) error {
	queryJSON, err := json.Marshal(rec.Query)
	if err != nil {
		return err
	}
	offersJSON, err := json.Marshal(rec.Offers)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertFlightDataSQL,
		rec.ID,
		rec.Context.ConversationID,
		rec.Context.UserID,
		rec.TicketType,
		rec.Query.Origin,
		rec.Query.Destination,
		rec.Query.DepartureDate,
		rec.Query.ReturnDate,
		string(queryJSON),
		string(offersJSON),
	)
	return err
}

func (r *Repo) SaveMessage(ctx context.Context, msg domain.MessageRecord) error {
	_, err := r.db.ExecContext(ctx, insertMessageSQL,
		msg.ID,
		msg.SearchID,
		msg.Context.ConversationID,
		msg.Context.UserID,
		msg.Source,
		msg.Text,
	)
	return err
}

func (r *Repo) LogFailure(ctx context.Context, searchID, code, detail string) error {
	_, err := r.db.ExecContext(ctx, insertFailureSQL, searchID, code, detail)
	return err
}
