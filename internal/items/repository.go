package items

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lelo88/inventory-api-golang/internal/db"
)

// Database es el subconjunto de *pgxpool.Pool que usa el repositorio.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres/CockroachDB: unique_violation.
const uniqueViolation = "23505"

// Repository accede a la tabla items del keyspace configurado.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database Database
}

// NewRepository crea un repositorio de items.
func NewRepository(database Database) *Repository {
	return &Repository{database: database}
}

// List hace un scan completo. No se prepara: es una sola sentencia sin parámetros.
func (repository *Repository) List(ctx context.Context) ([]Item, error) {
	const query = `SELECT id::text, name, marca, color, precio::text FROM items`

	rows, err := repository.database.Query(ctx, query, db.Params(false)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Marca, &item.Color, &item.Precio); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Insert crea el item con el id que generó el cliente.
func (repository *Repository) Insert(ctx context.Context, item Item) error {
	const query = `
		INSERT INTO items (id, name, marca, color, precio)
		VALUES ($1::uuid, $2, $3, $4, $5::decimal)
	`

	_, err := repository.database.Exec(ctx, query,
		db.Params(true, item.ID, item.Name, item.Marca, item.Color, string(item.Precio))...)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
			return ErrorDuplicateID
		}
		return err
	}

	return nil
}

// Update reemplaza los cuatro campos. Cero filas afectadas no es error.
func (repository *Repository) Update(ctx context.Context, item Item) error {
	const query = `
		UPDATE items
		SET name = $1, marca = $2, color = $3, precio = $4::decimal
		WHERE id = $5::uuid
	`

	_, err := repository.database.Exec(ctx, query,
		db.Params(true, item.Name, item.Marca, item.Color, string(item.Precio), item.ID)...)
	return err
}

// Delete es idempotente: borrar un id inexistente no es error.
func (repository *Repository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM items WHERE id = $1::uuid`

	_, err := repository.database.Exec(ctx, query, db.Params(true, id)...)
	return err
}
