package pgdb

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const userColumns = `id, email, full_name, role, password_hash,
	shipping_address, phone, city, postal_code, created_at`

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := u.conv.ToModel(user)
	query := `
		INSERT INTO users (email, full_name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	model, err := scanUser(conn(ctx, u.pool).QueryRow(ctx, query, m.Email, m.FullName, m.Role, m.PasswordHash))
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmailTaken)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(model), nil
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return u.getOne(ctx, query, email)
}

func (u *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return u.getOne(ctx, query, uid)
}

func (u *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := conn(ctx, u.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.User, 0)
	for rows.Next() {
		model, err := scanUser(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *u.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (u *UserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	query := `UPDATE users SET role = $2 WHERE id = $1 RETURNING ` + userColumns

	return u.getOne(ctx, query, uid, string(role))
}

// UpdateProfile перезаписывает имя и данные доставки пользователя.
func (u *UserRepo) UpdateProfile(ctx context.Context, id string, fullName string, profile domain.Profile) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	query := `
		UPDATE users
		SET full_name = $2, shipping_address = $3, phone = $4, city = $5, postal_code = $6
		WHERE id = $1
		RETURNING ` + userColumns

	return u.getOne(ctx, query, uid, fullName,
		profile.ShippingAddress, profile.Phone, profile.City, profile.PostalCode)
}

func (u *UserRepo) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	tag, err := conn(ctx, u.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, uid)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	return nil
}

func (u *UserRepo) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	model, err := scanUser(conn(ctx, u.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(model), nil
}

func scanUser(row pgx.Row) (*converter.UserModel, error) {
	var model converter.UserModel
	if err := row.Scan(
		&model.ID, &model.Email, &model.FullName, &model.Role, &model.PasswordHash,
		&model.ShippingAddress, &model.Phone, &model.City, &model.PostalCode, &model.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
