package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"healthnav-service/internal/domain"
)

// SQLite-backed implementation of the ContactRepository port.
type SqliteContactRepository struct{ DB *sql.DB }

func NewSqliteContactRepository(db *sql.DB) *SqliteContactRepository {
	return &SqliteContactRepository{DB: db}
}

const contactColumns = `
	id,
	user_id,
	full_name,
	phone,
	blood_group,
	medical_history,
	additional_comments,
	preferred_hospital,
	preferred_ambulance,
	created_at,
	updated_at
`

func (s *SqliteContactRepository) CreateContact(ctx context.Context, c *domain.EmergencyContact) error {
	if s.DB == nil {
		return errors.New("sqlite contact repository: DB is nil")
	}
	if c == nil {
		return errors.New("create contact: contact is nil")
	}

	query := `
	INSERT INTO emergency_contacts (` + contactColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.FullName, c.Phone,
		c.BloodGroup, c.MedicalHistory, c.AdditionalComments,
		c.PreferredHospital, c.PreferredAmbulance,
		c.CreatedAt.UTC().Format(time.RFC3339), c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create contact: insert: %w", err)
	}

	return nil
}

func (s *SqliteContactRepository) GetContact(ctx context.Context, id string) (*domain.EmergencyContact, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite contact repository: DB is nil")
	}

	query := `SELECT ` + contactColumns + ` FROM emergency_contacts WHERE id = ?;`
	row := s.DB.QueryRowContext(ctx, query, id)

	c, err := scanContact(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return c, nil
}

func (s *SqliteContactRepository) ListContactsByUser(ctx context.Context, userID string) ([]*domain.EmergencyContact, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite contact repository: DB is nil")
	}

	query := `
	SELECT ` + contactColumns + `
	FROM emergency_contacts
	WHERE user_id = ?
	ORDER BY created_at;
	`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: query emergency_contacts table: %w", err)
	}
	defer rows.Close()

	contacts := make([]*domain.EmergencyContact, 0, 8)
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list contacts: scan row: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: row iteration: %w", err)
	}

	return contacts, nil
}

func (s *SqliteContactRepository) UpdateContact(ctx context.Context, c *domain.EmergencyContact) error {
	if s.DB == nil {
		return errors.New("sqlite contact repository: DB is nil")
	}
	if c == nil {
		return errors.New("update contact: contact is nil")
	}

	query := `
	UPDATE emergency_contacts SET
		full_name = ?,
		phone = ?,
		blood_group = ?,
		medical_history = ?,
		additional_comments = ?,
		preferred_hospital = ?,
		preferred_ambulance = ?,
		updated_at = ?
	WHERE id = ?;
	`
	res, err := s.DB.ExecContext(ctx, query,
		c.FullName, c.Phone, c.BloodGroup, c.MedicalHistory,
		c.AdditionalComments, c.PreferredHospital, c.PreferredAmbulance,
		c.UpdatedAt.UTC().Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact: exec: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contact: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update contact id=%q: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *SqliteContactRepository) DeleteContact(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("sqlite contact repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete contact: exec: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete contact id=%q: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanContact(scan func(dest ...any) error) (*domain.EmergencyContact, error) {
	var (
		c                    domain.EmergencyContact
		createdAt, updatedAt string
	)

	err := scan(&c.ID, &c.UserID, &c.FullName, &c.Phone,
		&c.BloodGroup, &c.MedicalHistory, &c.AdditionalComments,
		&c.PreferredHospital, &c.PreferredAmbulance,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &c, nil
}
