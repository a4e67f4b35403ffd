package missionlog

import (
	"context"
	"time"

	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, log Log) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.missionlog.add")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", log.UserID))
	span.SetAttributes(attribute.String("category", log.Category.String()))

	if log.Metadata == nil {
		log.Metadata = map[string]string{}
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO mission_log (user_id, category, date, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		log.UserID,
		log.Category,
		log.Date,
		log.Metadata,
		log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// List returns all logs of the user, newest first.
func (r *Repo) List(ctx context.Context, userID int) (_ []*Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.missionlog.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, category, date, metadata, created_at
		FROM mission_log
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}

// ListRange returns the user's logs dated in [from, to), oldest first.
func (r *Repo) ListRange(ctx context.Context, userID int, from, to time.Time) (_ []*Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.missionlog.listrange")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user-id", userID))
	span.SetAttributes(attribute.String("from", from.String()))
	span.SetAttributes(attribute.String("to", to.String()))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, category, date, metadata, created_at
		FROM mission_log
		WHERE user_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date, id
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}

func scanLogs(rows pgx.Rows) ([]*Log, error) {
	defer rows.Close()

	logs := make([]*Log, 0)
	for rows.Next() {
		l := &Log{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.Category, &l.Date, &l.Metadata, &l.CreatedAt); err != nil {
			return nil, err
		}
		if l.Metadata == nil {
			l.Metadata = map[string]string{}
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
