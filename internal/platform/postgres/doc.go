// Package postgres implements the repository ports from internal/store
// on top of PostgreSQL, using the pgx stdlib driver through database/sql.
// Driver-level errors are translated to store sentinel errors by MapError
// so nothing above this package ever inspects a pg error code.
package postgres
