package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFromValues(t *testing.T) {
	values := [][]interface{}{
		{"School District", "Status", "Contact"},
		{"TUSD", "In Progress", "jane@tusd.edu"},
		{"Lakeside", "Stalled"},
		{"Hilltop", "Won", "amy@hilltop.org", "extra cell dropped"},
	}

	table := tableFromValues(values)

	require.Equal(t, []string{"School District", "Status", "Contact"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "TUSD", table.Rows[0]["School District"])
	assert.Equal(t, "jane@tusd.edu", table.Rows[0]["Contact"])
	// Short rows leave trailing columns empty.
	assert.Equal(t, "", table.Rows[1]["Contact"])
	// Cells beyond the header are dropped.
	assert.Len(t, table.Rows[2], 3)
}

func TestTableFromValues_Empty(t *testing.T) {
	assert.True(t, tableFromValues(nil).Empty())
	assert.True(t, tableFromValues([][]interface{}{}).Empty())

	headerOnly := tableFromValues([][]interface{}{{"Name"}})
	assert.True(t, headerOnly.Empty())
	assert.Equal(t, []string{"Name"}, headerOnly.Columns)
}

func TestTableFromValues_NonStringCells(t *testing.T) {
	values := [][]interface{}{
		{"Name", "Count"},
		{"TUSD", 42},
	}

	table := tableFromValues(values)

	assert.Equal(t, "42", table.Rows[0]["Count"])
}

func TestTableFromValues_TrimsWhitespace(t *testing.T) {
	values := [][]interface{}{
		{" Name "},
		{"  TUSD  "},
	}

	table := tableFromValues(values)

	assert.Equal(t, []string{"Name"}, table.Columns)
	assert.Equal(t, "TUSD", table.Rows[0]["Name"])
}
