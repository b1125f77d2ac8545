package stores

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskboard/api/internal/models"
)

type userStoreImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserStore(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserStore {
	return &userStoreImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userStoreImpl) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	user := &models.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password_hash,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Error().
					Str("email", user.Email).
					Msg("user with this email already exists")
				return nil, ErrUserEmailTaken
			}
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("created user")
	return user, nil
}

func (s *userStoreImpl) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{
		Email: email,
	}

	const selectUserByEmailQuery = `
SELECT id,
       name,
       password_hash,
       created_at
FROM users
WHERE email = $1 AND
      deleted_at IS NULL
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("email", email).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to select user by email")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user by email")

	return user, nil
}

func (s *userStoreImpl) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{
		ID: id,
	}

	const selectUserByIDQuery = `
SELECT name,
       email,
       created_at
FROM users
WHERE id = $1 AND
      deleted_at IS NULL
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", id).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user by id")

	return user, nil
}

func (s *userStoreImpl) UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error) {
	user := &models.User{
		ID: params.ID,
	}

	const updateUserQuery = `
UPDATE users
SET name = COALESCE($1, name),
    email = COALESCE($2, email)
WHERE id = $3 AND
      deleted_at IS NULL
RETURNING name, email, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateUserQuery,
		params.Name,
		params.Email,
		user.ID,
	).Scan(
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("updated user")

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("updated user")
	return user, nil
}

func (s *userStoreImpl) SoftDeleteUser(ctx context.Context, id string) error {
	// The deleted_at IS NULL guard keeps the original deletion
	// timestamp when the endpoint is hit twice.
	const softDeleteUserQuery = `
UPDATE users
SET deleted_at = NOW()
WHERE id = $1 AND
      deleted_at IS NULL
`
	tag, err := s.pgPool.Exec(
		ctx,
		softDeleteUserQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to soft delete user")
		return err
	}
	s.logger.Debug().
		Str("user_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("soft deleted user")

	s.logger.Info().
		Str("user_id", id).
		Msg("soft deleted user")
	return nil
}
