package pgsql_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The membership upserts rely on how pgx encodes the role_slugs parameter:
// a nil slice must reach the server as NULL (which the query coalesces to an
// empty array on insert and to the existing grants on reactivation), while a
// non-nil slice must arrive as an array literal that replaces them. These
// assertions pin that boundary down.
func TestRoleSlugsParameterEncoding(t *testing.T) {
	m := pgtype.NewMap()

	t.Run("nil slice encodes as NULL", func(t *testing.T) {
		buf, err := m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string(nil), nil)
		require.NoError(t, err)
		assert.Nil(t, buf)
	})

	t.Run("empty slice encodes as an empty array", func(t *testing.T) {
		buf, err := m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(buf))
	})

	t.Run("grant encodes as an array literal", func(t *testing.T) {
		buf, err := m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string{"editor"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "{editor}", string(buf))
	})
}
