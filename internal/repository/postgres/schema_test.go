package postgres

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Users, hospitals and doctors support hard delete and dependent rows
// keep their dangling references afterwards; owner existence is checked
// at creation time only. A foreign key on any of the reference columns
// would turn those deletes into constraint violations.
func TestSchemaCarriesNoForeignKeys(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.up.sql"))
	require.NoError(t, err)
	schema := strings.ToUpper(string(raw))

	require.NotContains(t, schema, "REFERENCES")

	// The uniqueness backstops for concurrent creates stay.
	require.Contains(t, schema, "USUARIOS_EMAIL_UNIQUE")
	require.Contains(t, schema, "PACIENTES_NUMERO_DOCUMENTO_UNIQUE")
	require.Contains(t, schema, "PACIENTES_EMAIL_UNIQUE")
}
