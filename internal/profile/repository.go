// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

// Columns is the full user-row column list scanned into Profile.
// Shared with the matchmaking repository so candidate queries stay in sync.
const Columns = `id, first_name, last_name, date_of_birth, gender, height, weight,
	marital_status, religion, caste, mother_tongue, email, phone, country, state, city,
	education, education_details, occupation, annual_income, work_location,
	diet, smoking, drinking, hobbies, interests, about_me,
	partner_gender, partner_age_min, partner_age_max, partner_height_min, partner_height_max,
	partner_education, partner_occupation, partner_income, partner_country, partner_location,
	partner_religion, partner_caste, partner_marital_status, partner_about,
	photos, is_verified, account_status, last_active, created_at, updated_at`

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*Profile, error)
	TouchLastActive(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, Columns)

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	p.NormalizePreferences()
	return &p, nil
}

func (r *postgresRepository) TouchLastActive(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_active = CURRENT_TIMESTAMP WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
