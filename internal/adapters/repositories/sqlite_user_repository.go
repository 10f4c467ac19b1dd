package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"healthnav-service/internal/domain"
)

// SQLite-backed implementation of the UserRepository port.
//
// Cart and pharmacy sub-documents are stored as JSON columns and always
// written together with the user row (single-document writes only).
type SqliteUserRepository struct{ DB *sql.DB }

func NewSqliteUserRepository(db *sql.DB) *SqliteUserRepository {
	return &SqliteUserRepository{DB: db}
}

const userColumns = `
	id,
	name,
	cnic,
	contact,
	email,
	password_hash,
	is_premium,
	cart,
	pharmacy
`

func (s *SqliteUserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	if s.DB == nil {
		return errors.New("sqlite user repository: DB is nil")
	}
	if u == nil {
		return errors.New("create user: user is nil")
	}

	cart, pharmacy, err := marshalSubdocs(u)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	query := `
	INSERT INTO users (` + userColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		u.ID, u.Name, u.CNIC, u.Contact, u.Email, u.Password, boolToInt(u.IsPremium), cart, pharmacy,
	)
	if err != nil {
		return fmt.Errorf("create user: insert: %w", err)
	}

	return nil
}

func (s *SqliteUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getBy(ctx, "id", id)
}

func (s *SqliteUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, "email", email)
}

func (s *SqliteUserRepository) GetUserByCNIC(ctx context.Context, cnic string) (*domain.User, error) {
	return s.getBy(ctx, "cnic", cnic)
}

func (s *SqliteUserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite user repository: DB is nil")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?;`
	row := s.DB.QueryRowContext(ctx, query, value)

	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by %s: %w", column, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}

	return u, nil
}

// UpdateUser rewrites the full user row, sub-documents included.
func (s *SqliteUserRepository) UpdateUser(ctx context.Context, u *domain.User) error {
	if s.DB == nil {
		return errors.New("sqlite user repository: DB is nil")
	}
	if u == nil {
		return errors.New("update user: user is nil")
	}

	cart, pharmacy, err := marshalSubdocs(u)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	query := `
	UPDATE users SET
		name = ?,
		cnic = ?,
		contact = ?,
		email = ?,
		password_hash = ?,
		is_premium = ?,
		cart = ?,
		pharmacy = ?
	WHERE id = ?;
	`
	res, err := s.DB.ExecContext(ctx, query,
		u.Name, u.CNIC, u.Contact, u.Email, u.Password, boolToInt(u.IsPremium), cart, pharmacy, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: exec: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user id=%q: %w", u.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *SqliteUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite user repository: DB is nil")
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY name;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: query users table: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, 64)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list users: scan row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: row iteration: %w", err)
	}

	return users, nil
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var (
		u         domain.User
		isPremium int
		cart      string
		pharmacy  sql.NullString
	)

	err := scan(&u.ID, &u.Name, &u.CNIC, &u.Contact, &u.Email, &u.Password, &isPremium, &cart, &pharmacy)
	if err != nil {
		return nil, err
	}

	u.IsPremium = isPremium != 0

	if err := json.Unmarshal([]byte(cart), &u.Cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	if pharmacy.Valid && pharmacy.String != "" {
		var p domain.Pharmacy
		if err := json.Unmarshal([]byte(pharmacy.String), &p); err != nil {
			return nil, fmt.Errorf("decode pharmacy: %w", err)
		}
		u.Pharmacy = &p
	}

	return &u, nil
}

func marshalSubdocs(u *domain.User) (cart string, pharmacy sql.NullString, err error) {
	items := u.Cart
	if items == nil {
		items = []domain.Medicine{}
	}

	rawCart, err := json.Marshal(items)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("encode cart: %w", err)
	}

	if u.Pharmacy != nil {
		rawPharmacy, err := json.Marshal(u.Pharmacy)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("encode pharmacy: %w", err)
		}
		pharmacy = sql.NullString{String: string(rawPharmacy), Valid: true}
	}

	return string(rawCart), pharmacy, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
