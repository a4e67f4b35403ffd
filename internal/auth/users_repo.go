package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/operatorprotocol/internal/telemetry/tracing"
	"github.com/2beens/operatorprotocol/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
)

type UsersRepo struct {
	db *pgxpool.Pool
}

func NewUsersRepo(db *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{
		db: db,
	}
}

func (r *UsersRepo) Get(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.users.get")
	defer func() {
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	user := &User{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, username, password_hash
			FROM operator
			WHERE username = $1
		`, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UsersRepo) Add(ctx context.Context, username, passwordHash string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.users.add")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var id int
	err = r.db.
		QueryRow(ctx, `
			INSERT INTO operator (username, password_hash)
			VALUES ($1, $2)
			RETURNING id
		`, username, passwordHash).
		Scan(&id)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return 0, fmt.Errorf("%w: %s", ErrUserExists, username)
		}
		return 0, err
	}
	return id, nil
}
