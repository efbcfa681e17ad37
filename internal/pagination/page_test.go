package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsPageNumber(t *testing.T) {
	page := New(5, 10, 25)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 3, page.TotalPages)

	page = New(0, 10, 25)
	assert.Equal(t, 1, page.Number)

	page = New(-3, 10, 25)
	assert.Equal(t, 1, page.Number)
}

func TestNewDefaultsSize(t *testing.T) {
	page := New(1, 0, 50)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNewEmptyListing(t *testing.T) {
	page := New(1, 10, 0)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)

	start, end := page.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestBounds(t *testing.T) {
	page := New(2, 10, 25)
	start, end := page.Bounds()
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	// Last, partial page
	page = New(3, 10, 25)
	start, end = page.Bounds()
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10, 100).Offset())
	assert.Equal(t, 30, New(4, 10, 100).Offset())
}
