package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/contactbook/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool PgxPool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool PgxPool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const (
	pgSelectContacts = `SELECT id, nama, email, nohp FROM contacts ORDER BY created_at, id`
	pgSelectContact  = `SELECT id, nama, email, nohp FROM contacts WHERE id = $1`
	pgInsertContact  = `INSERT INTO contacts (nama, email, nohp) VALUES ($1, $2, $3) RETURNING id`
	pgUpdateContact  = `UPDATE contacts SET nama = $2, email = $3, nohp = $4 WHERE id = $1 RETURNING id, nama, email, nohp`
	pgDeleteContact  = `DELETE FROM contacts WHERE id = $1 RETURNING id, nama, email, nohp`
)

func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// List returns every contact in insertion order.
func (r *PgContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx, pgSelectContacts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Nama, &c.Email, &c.NoHP); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

func (r *PgContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	if !validUUID(id) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.pool.QueryRow(ctx, pgSelectContact, id))
}

// InsertMany inserts all contacts in a single transaction and fills in the
// generated ids. Either every record is stored or none is.
func (r *PgContactRepository) InsertMany(ctx context.Context, contacts []*model.Contact) (n int, err error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			n, err = 0, fmt.Errorf("commit insert: %w", e)
		}
	}()

	for i, c := range contacts {
		if err = tx.QueryRow(ctx, pgInsertContact, c.Nama, c.Email, c.NoHP).Scan(&c.ID); err != nil {
			return 0, fmt.Errorf("insert contact[%d]: %w", i, err)
		}
	}
	return len(contacts), nil
}

func (r *PgContactRepository) UpdateByID(ctx context.Context, id string, c *model.Contact) (*model.Contact, error) {
	if !validUUID(id) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.pool.QueryRow(ctx, pgUpdateContact, id, c.Nama, c.Email, c.NoHP))
}

func (r *PgContactRepository) DeleteByID(ctx context.Context, id string) (*model.Contact, error) {
	if !validUUID(id) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.pool.QueryRow(ctx, pgDeleteContact, id))
}

func (r *PgContactRepository) scanOne(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	if err := row.Scan(&c.ID, &c.Nama, &c.Email, &c.NoHP); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// validUUID guards the uuid column: a malformed id can never match a row.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
