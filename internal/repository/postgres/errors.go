package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lalith-99/vidora/internal/repository"
)

const uniqueViolation = "23505"

// wrap annotates err with op and turns unique-index violations into
// repository.ErrDuplicate, keeping the driver error in the chain.
func wrap(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w: %s", op, repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike escapes the ILIKE metacharacters so user input is matched
// literally. Backslash is the default ILIKE escape character.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
