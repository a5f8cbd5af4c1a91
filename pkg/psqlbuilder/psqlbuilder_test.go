package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"equipment_id": "eq-1"}).
		Where(squirrel.Lt{"start_time": 10}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE equipment_id = $1 AND start_time < $2", query)
	assert.Equal(t, []interface{}{"eq-1", 10}, args)
}
