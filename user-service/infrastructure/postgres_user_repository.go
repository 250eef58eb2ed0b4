package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/user-service/domain"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// postgresUser represents a user in the database
type postgresUser struct {
	ID         string    `db:"id"`
	ExternalID string    `db:"external_id"`
	Email      string    `db:"email"`
	Username   string    `db:"username"`
	FullName   string    `db:"full_name"`
	Bio        string    `db:"bio"`
	Location   string    `db:"location"`
	AvatarURL  string    `db:"avatar_url"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
	Version    int       `db:"version"`
}

type postgresSkill struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Level       string `db:"level"`
	Offered     bool   `db:"offered"`
}

const userColumns = `id, external_id, email, username, full_name, bio, location, avatar_url, status, created_at, updated_at, version`

// FindByID finds a user by ID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id models.ID) (*domain.User, error) {
	var pgUser postgresUser
	err := r.db.GetContext(ctx, &pgUser,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, errors.Wrap(err, "failed to find user")
	}

	skills, err := r.findSkills(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.toDomain(&pgUser, skills), nil
}

// FindByIDForUpdate loads a user with a row lock inside the caller's
// transaction.
func (r *PostgresUserRepository) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id models.ID) (*domain.User, error) {
	var pgUser postgresUser
	err := tx.GetContext(ctx, &pgUser,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, errors.Wrap(err, "failed to lock user")
	}

	var pgSkills []postgresSkill
	err = tx.SelectContext(ctx, &pgSkills,
		`SELECT id, user_id, name, description, level, offered FROM user_skills WHERE user_id = $1`,
		id.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user skills")
	}

	return r.toDomain(&pgUser, pgSkills), nil
}

// Archive snapshots the full account into the archive keyed by saga so
// compensation can restore it. Re-archiving for the same saga keeps the
// first snapshot.
func (r *PostgresUserRepository) Archive(ctx context.Context, tx *sqlx.Tx, sagaID models.ID, user *domain.User) error {
	snapshot, err := json.Marshal(archivedUser{User: r.toPostgres(user), Skills: r.skillsToPostgres(user)})
	if err != nil {
		return errors.Wrap(err, "failed to marshal user snapshot")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO deleted_user_archive (saga_id, user_id, snapshot, archived_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (saga_id) DO NOTHING`,
		sagaID.String(), user.ID.String(), snapshot)
	return errors.Wrap(err, "failed to archive user")
}

// Update rewrites the user's profile fields and replaces their skills
func (r *PostgresUserRepository) Update(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	pgUser := r.toPostgres(user)
	_, err := tx.NamedExecContext(ctx,
		`UPDATE users
		 SET email = :email, username = :username, full_name = :full_name,
		     bio = :bio, location = :location, avatar_url = :avatar_url,
		     status = :status, updated_at = :updated_at, version = :version
		 WHERE id = :id`,
		pgUser)
	if err != nil {
		return errors.Wrap(err, "failed to update user")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = $1`, pgUser.ID); err != nil {
		return errors.Wrap(err, "failed to clear user skills")
	}
	return r.insertSkills(ctx, tx, user)
}

// Delete removes the user and their skills
func (r *PostgresUserRepository) Delete(ctx context.Context, tx *sqlx.Tx, id models.ID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = $1`, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete user skills")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}

// Restore puts the archived snapshot back and consumes the archive row.
// Returns nil when no snapshot exists for the saga.
func (r *PostgresUserRepository) Restore(ctx context.Context, tx *sqlx.Tx, sagaID models.ID) (*domain.User, error) {
	var snapshot []byte
	err := tx.GetContext(ctx, &snapshot,
		`SELECT snapshot FROM deleted_user_archive WHERE saga_id = $1 FOR UPDATE`,
		sagaID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Nothing archived
		}
		return nil, errors.Wrap(err, "failed to load archived user")
	}

	var archived archivedUser
	if err := json.Unmarshal(snapshot, &archived); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user snapshot")
	}

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (:id, :external_id, :email, :username, :full_name, :bio, :location, :avatar_url, :status, :created_at, :updated_at, :version)
		 ON CONFLICT (id) DO UPDATE
		 SET email = EXCLUDED.email, username = EXCLUDED.username,
		     full_name = EXCLUDED.full_name, bio = EXCLUDED.bio,
		     location = EXCLUDED.location, avatar_url = EXCLUDED.avatar_url,
		     status = EXCLUDED.status, updated_at = EXCLUDED.updated_at,
		     version = EXCLUDED.version`,
		archived.User)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reinsert user")
	}

	user := r.toDomain(archived.User, archived.Skills)
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = $1`, archived.User.ID); err != nil {
		return nil, errors.Wrap(err, "failed to clear user skills")
	}
	if err := r.insertSkills(ctx, tx, user); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deleted_user_archive WHERE saga_id = $1`, sagaID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to consume archive")
	}

	return user, nil
}

type archivedUser struct {
	User   *postgresUser   `json:"user"`
	Skills []postgresSkill `json:"skills"`
}

func (r *PostgresUserRepository) findSkills(ctx context.Context, userID models.ID) ([]postgresSkill, error) {
	var pgSkills []postgresSkill
	err := r.db.SelectContext(ctx, &pgSkills,
		`SELECT id, user_id, name, description, level, offered FROM user_skills WHERE user_id = $1`,
		userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user skills")
	}
	return pgSkills, nil
}

func (r *PostgresUserRepository) insertSkills(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	for _, skill := range r.skillsToPostgres(user) {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO user_skills (id, user_id, name, description, level, offered)
			 VALUES (:id, :user_id, :name, :description, :level, :offered)`,
			skill)
		if err != nil {
			return errors.Wrap(err, "failed to insert user skill")
		}
	}
	return nil
}

// toPostgres converts a domain user to the postgres model
func (r *PostgresUserRepository) toPostgres(user *domain.User) *postgresUser {
	return &postgresUser{
		ID:         user.ID.String(),
		ExternalID: user.ExternalID,
		Email:      user.Email,
		Username:   user.Username,
		FullName:   user.FullName,
		Bio:        user.Bio,
		Location:   user.Location,
		AvatarURL:  user.AvatarURL,
		Status:     string(user.Status),
		CreatedAt:  user.Timestamps.CreatedAt,
		UpdatedAt:  user.Timestamps.UpdatedAt,
		Version:    user.Version.Value,
	}
}

func (r *PostgresUserRepository) skillsToPostgres(user *domain.User) []postgresSkill {
	pgSkills := make([]postgresSkill, len(user.Skills))
	for i, skill := range user.Skills {
		pgSkills[i] = postgresSkill{
			ID:          skill.ID.String(),
			UserID:      user.ID.String(),
			Name:        skill.Name,
			Description: skill.Description,
			Level:       string(skill.Level),
			Offered:     skill.Offered,
		}
	}
	return pgSkills
}

// toDomain converts postgres models to a domain user
func (r *PostgresUserRepository) toDomain(pgUser *postgresUser, pgSkills []postgresSkill) *domain.User {
	skills := make([]domain.Skill, len(pgSkills))
	for i, pgSkill := range pgSkills {
		skills[i] = domain.Skill{
			ID:          models.ID(pgSkill.ID),
			Name:        pgSkill.Name,
			Description: pgSkill.Description,
			Level:       domain.SkillLevel(pgSkill.Level),
			Offered:     pgSkill.Offered,
		}
	}

	return &domain.User{
		ID:         models.ID(pgUser.ID),
		ExternalID: pgUser.ExternalID,
		Email:      pgUser.Email,
		Username:   pgUser.Username,
		FullName:   pgUser.FullName,
		Bio:        pgUser.Bio,
		Location:   pgUser.Location,
		AvatarURL:  pgUser.AvatarURL,
		Status:     domain.UserStatus(pgUser.Status),
		Skills:     skills,
		Timestamps: models.Timestamps{
			CreatedAt: pgUser.CreatedAt,
			UpdatedAt: pgUser.UpdatedAt,
		},
		Version: models.Version{Value: pgUser.Version},
	}
}
