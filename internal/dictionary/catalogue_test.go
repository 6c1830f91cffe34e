package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/booksapi/internal/library"
)

func TestBookTypes_CoverEnumInOrder(t *testing.T) {
	got := BookTypes()
	require.Len(t, got, len(library.BookTypes))
	for i, e := range got {
		assert.Equal(t, string(library.BookTypes[i]), e.Code)
		assert.NotEmpty(t, e.Label)
	}
	assert.Equal(t, Entry{Code: "phylosophy", Label: "Philosophy"}, got[4])
}

func TestRoles(t *testing.T) {
	assert.Equal(t, []Entry{
		{Code: "professor", Label: "Professor"},
		{Code: "librarian", Label: "Librarian"},
		{Code: "student", Label: "Student"},
	}, Roles())
}
