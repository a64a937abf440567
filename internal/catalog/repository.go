package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Get(ctx context.Context, productID string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Upsert(ctx context.Context, p Product) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `product_id, name, price, unit, origin, certifications,
	spec_packaging, spec_case_pack, spec_shelf_life, spec_storage,
	seller_id, seller_name`

func (r *PostgresRepository) Get(ctx context.Context, productID string) (Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id=$1`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) Upsert(ctx context.Context, p Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products(product_id, name, price, unit, origin, certifications,
			spec_packaging, spec_case_pack, spec_shelf_life, spec_storage,
			seller_id, seller_name)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (product_id) DO UPDATE SET
			name=EXCLUDED.name, price=EXCLUDED.price, unit=EXCLUDED.unit,
			origin=EXCLUDED.origin, certifications=EXCLUDED.certifications,
			spec_packaging=EXCLUDED.spec_packaging, spec_case_pack=EXCLUDED.spec_case_pack,
			spec_shelf_life=EXCLUDED.spec_shelf_life, spec_storage=EXCLUDED.spec_storage,
			seller_id=EXCLUDED.seller_id, seller_name=EXCLUDED.seller_name,
			updated_at=now()
	`, p.ID, p.Name, p.Price, p.Unit, p.Origin, p.Certifications,
		p.Specifications.Packaging, p.Specifications.CasePack,
		p.Specifications.ShelfLife, p.Specifications.Storage,
		p.SellerID, p.SellerName)
	return err
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Unit, &p.Origin, &p.Certifications,
		&p.Specifications.Packaging, &p.Specifications.CasePack,
		&p.Specifications.ShelfLife, &p.Specifications.Storage,
		&p.SellerID, &p.SellerName)
	return p, err
}
