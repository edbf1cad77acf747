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

const contactMessageColumns = `id, name, email, message, status, created_at`

type ContactMessageRepo struct {
	pool *pgxpool.Pool
	conv converter.ContactMessageConverter
}

func NewContactMessageRepo(pool *pgxpool.Pool, conv converter.ContactMessageConverter) *ContactMessageRepo {
	return &ContactMessageRepo{pool: pool, conv: conv}
}

func (c *ContactMessageRepo) Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (name, email, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + contactMessageColumns

	model, err := scanContactMessage(conn(ctx, c.pool).QueryRow(ctx, query,
		msg.Name, msg.Email, msg.Message, string(msg.Status),
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// List возвращает сообщения, новые первыми.
func (c *ContactMessageRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages ORDER BY created_at DESC`

	rows, err := conn(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.ContactMessage, 0)
	for rows.Next() {
		model, err := scanContactMessage(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (c *ContactMessageRepo) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.ContactMessage, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrContactMessageNotFound)
	}

	query := `UPDATE contact_messages SET status = $2 WHERE id = $1 RETURNING ` + contactMessageColumns

	model, err := scanContactMessage(conn(ctx, c.pool).QueryRow(ctx, query, uid, string(status)))
	if err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrContactMessageNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

func (c *ContactMessageRepo) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return e.Wrap(whereami.WhereAmI(), e.ErrContactMessageNotFound)
	}

	tag, err := conn(ctx, c.pool).Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, uid)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrContactMessageNotFound)
	}

	return nil
}

func scanContactMessage(row pgx.Row) (*converter.ContactMessageModel, error) {
	var model converter.ContactMessageModel
	if err := row.Scan(
		&model.ID, &model.Name, &model.Email, &model.Message, &model.Status, &model.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
