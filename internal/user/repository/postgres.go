package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"alumni-network/backend/internal/user/domain"
)

// PostgresProfileRepository implements ProfileRepository on Postgres.
// company_ids and team_roles are stored as JSONB arrays.
type PostgresProfileRepository struct {
	db *sql.DB
}

// NewPostgresProfileRepository returns a Postgres-backed profile repository.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `uid, first_name, last_name, email, class_year, bio, phone_number,
	profile_picture_url, company_ids, team_roles, role, email_notifications, created_at, updated_at`

func (r *PostgresProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	companyIDs, teamRoles, err := marshalArrays(profile)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		profile.UID, profile.FirstName, profile.LastName, profile.Email, profile.ClassYear,
		profile.Bio, profile.PhoneNumber, profile.ProfilePictureURL, companyIDs, teamRoles,
		profile.Role, profile.EmailNotifications, profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *PostgresProfileRepository) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE uid = $1`, uid)
	profile, err := scanProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	companyIDs, teamRoles, err := marshalArrays(profile)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE profiles SET first_name = $2, last_name = $3, class_year = $4, bio = $5,
		 phone_number = $6, profile_picture_url = $7, company_ids = $8, team_roles = $9,
		 email_notifications = $10, updated_at = $11
		 WHERE uid = $1`,
		profile.UID, profile.FirstName, profile.LastName, profile.ClassYear, profile.Bio,
		profile.PhoneNumber, profile.ProfilePictureURL, companyIDs, teamRoles,
		profile.EmailNotifications, profile.UpdatedAt,
	)
	return err
}

func (r *PostgresProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *PostgresProfileRepository) ListSubscriberEmails(ctx context.Context, excludeUID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email FROM profiles WHERE email_notifications AND uid <> $1`, excludeUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func marshalArrays(profile *domain.Profile) ([]byte, []byte, error) {
	companyIDs := profile.CompanyIDs
	if companyIDs == nil {
		companyIDs = []string{}
	}
	teamRoles := profile.TeamRoles
	if teamRoles == nil {
		teamRoles = []string{}
	}
	companyJSON, err := json.Marshal(companyIDs)
	if err != nil {
		return nil, nil, err
	}
	rolesJSON, err := json.Marshal(teamRoles)
	if err != nil {
		return nil, nil, err
	}
	return companyJSON, rolesJSON, nil
}

func scanProfile(scan func(...any) error) (*domain.Profile, error) {
	var profile domain.Profile
	var companyIDs, teamRoles []byte
	err := scan(
		&profile.UID, &profile.FirstName, &profile.LastName, &profile.Email, &profile.ClassYear,
		&profile.Bio, &profile.PhoneNumber, &profile.ProfilePictureURL, &companyIDs, &teamRoles,
		&profile.Role, &profile.EmailNotifications, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(companyIDs) > 0 {
		if err := json.Unmarshal(companyIDs, &profile.CompanyIDs); err != nil {
			return nil, err
		}
	}
	if len(teamRoles) > 0 {
		if err := json.Unmarshal(teamRoles, &profile.TeamRoles); err != nil {
			return nil, err
		}
	}
	return &profile, nil
}
