// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as services
// and handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Token lookups also
// return it for revoked or expired tokens.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert violates the unique email index.
var ErrEmailExists = errors.New("email already exists")

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
