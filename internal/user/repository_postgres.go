package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `user_id, email, password_hash, name, phone, street, city, state, zip, is_admin, marketing_opt_in, sms_alert_opt_in, is_verified, verification_code, created_at`

	getUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password_hash, name, phone, street, city, state, zip, is_admin, marketing_opt_in, sms_alert_opt_in, is_verified, verification_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			phone = $2,
			street = $3,
			city = $4,
			state = $5,
			zip = $6,
			marketing_opt_in = $7
		WHERE user_id = $8
	`
	updatePasswordQuery = `UPDATE users SET password_hash = $1 WHERE user_id = $2`
	verifyUserQuery     = `
		UPDATE users
		SET is_verified = TRUE, verification_code = NULL
		WHERE email = $1 AND verification_code = $2
	`
	setSmsOptInQuery = `UPDATE users SET sms_alert_opt_in = $1 WHERE user_id = $2 AND is_admin = TRUE`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(getUserByIDQuery, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(getUserByEmailQuery, email)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var code any
	if u.VerificationCode != "" {
		code = u.VerificationCode
	}

	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.Phone,
		u.Street,
		u.City,
		u.State,
		u.Zip,
		u.IsAdmin,
		u.MarketingOptIn,
		u.SmsAlertOptIn,
		u.IsVerified,
		code,
		u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	u.ID = id
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		u.Name,
		u.Phone,
		u.Street,
		u.City,
		u.State,
		u.Zip,
		u.MarketingOptIn,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) UpdatePassword(id int, passwordHash string) error {
	result, err := r.db.Exec(updatePasswordQuery, passwordHash, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Verify(email, code string) error {
	if code == "" {
		return ErrInvalidCode
	}

	result, err := r.db.Exec(verifyUserQuery, email, code)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidCode
	}
	return nil
}

func (r *PostgresRepository) SetSmsAlertOptIn(id int, optIn bool) error {
	result, err := r.db.Exec(setSmsOptInQuery, optIn, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(scanner rowScanner) (User, error) {
	u := User{}
	var code sql.NullString
	var createdAt sql.NullString

	if err := scanner.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Phone,
		&u.Street,
		&u.City,
		&u.State,
		&u.Zip,
		&u.IsAdmin,
		&u.MarketingOptIn,
		&u.SmsAlertOptIn,
		&u.IsVerified,
		&code,
		&createdAt,
	); err != nil {
		return User{}, err
	}

	if code.Valid {
		u.VerificationCode = code.String
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}

	return u, nil
}
