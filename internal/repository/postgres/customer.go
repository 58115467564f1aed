package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, email, phone, password_hash, role, driver_license, created_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedOn = time.Now()
	query := `INSERT INTO customers (id, name, email, phone, password_hash, role, driver_license, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.PasswordHash, c.Role, c.DriverLicense, c.CreatedOn)
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.PasswordHash, &c.Role, &c.DriverLicense, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.PasswordHash, &c.Role, &c.DriverLicense, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
