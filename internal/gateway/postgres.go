package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"asset-management-app/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

// Postgres implements Gateway against a Postgres database via pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Gateway = (*Postgres)(nil)

// NewPostgres connects to the database and verifies the connection.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, wrap("connect", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, wrap("ping", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	var id models.Identity
	var passwordHash string
	err := p.pool.QueryRow(ctx, `
		SELECT id, email, password_hash
		FROM identities WHERE email = $1`, email).
		Scan(&id.ID, &id.Email, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, wrap("sign in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return id, nil
}

func (p *Postgres) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, wrap("hash password", err)
	}

	id := models.Identity{ID: uuid.NewString(), Email: email}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO identities (id, email, password_hash)
		VALUES ($1, $2, $3)`, id.ID, id.Email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Identity{}, ErrDuplicateEmail
		}
		return models.Identity{}, wrap("sign up", err)
	}
	return id, nil
}

// SignOut has nothing to invalidate server-side: credentials are checked per
// login and tokens expire on their own.
func (p *Postgres) SignOut(ctx context.Context) error {
	return nil
}

func (p *Postgres) DeleteIdentity(ctx context.Context, identityID string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM identities WHERE id = $1`, identityID)
	if err != nil {
		return wrap("delete identity", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) GetProfileRole(ctx context.Context, identityID string) (models.Role, error) {
	var role models.Role
	err := p.pool.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, identityID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", wrap("get profile role", err)
	}
	if !models.IsValidRole(role) {
		return "", wrap("get profile role", errors.New("malformed role "+string(role)))
	}
	return role, nil
}

func (p *Postgres) GetProfile(ctx context.Context, identityID string) (models.Profile, error) {
	var prof models.Profile
	err := p.pool.QueryRow(ctx, `
		SELECT first_name, last_name, designation
		FROM profiles WHERE id = $1`, identityID).
		Scan(&prof.FirstName, &prof.LastName, &prof.Designation)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, wrap("get profile", err)
	}
	return prof, nil
}

func (p *Postgres) UpdateProfile(ctx context.Context, identityID string, prof models.Profile) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE profiles
		SET first_name = $1, last_name = $2, designation = $3, updated_at = now()
		WHERE id = $4`, prof.FirstName, prof.LastName, prof.Designation, identityID)
	if err != nil {
		return wrap("update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) InsertProfile(ctx context.Context, identityID string, role models.Role, prof models.Profile) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO profiles (id, role, first_name, last_name, designation)
		VALUES ($1, $2, $3, $4, $5)`,
		identityID, role, prof.FirstName, prof.LastName, prof.Designation)
	if err != nil {
		return wrap("insert profile", err)
	}
	return nil
}

func (p *Postgres) ListAssets(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	sqlStr := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM assets`
	args := []interface{}{}
	if filter.NameContains != "" {
		sqlStr += ` WHERE name ILIKE $1`
		args = append(args, "%"+filter.NameContains+"%")
	}
	sqlStr += ` ORDER BY id ASC`

	rows, err := p.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrap("list assets", err)
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, wrap("list assets", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list assets", err)
	}
	return assets, nil
}

func (p *Postgres) InsertAsset(ctx context.Context, fields AssetFields) ([]models.Asset, error) {
	a := models.Asset{
		Name:        fields.Name,
		Description: fields.Description,
		CreatedBy:   fields.CreatedBy,
	}
	err := p.pool.QueryRow(ctx, `
		INSERT INTO assets (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		fields.Name, fields.Description, fields.CreatedBy).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, wrap("insert asset", err)
	}
	return []models.Asset{a}, nil
}

func (p *Postgres) UpdateAsset(ctx context.Context, id int64, fields AssetFields) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE assets
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3`, fields.Name, fields.Description, id)
	if err != nil {
		return wrap("update asset", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteAsset(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return wrap("delete asset", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	// Fallback for drivers that only expose the message.
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
