package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlobSHA(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		// значения совпадают с `git hash-object`
		{name: "empty", data: "", want: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{name: "hello", data: "hello\n", want: "ce013625030ba8dba906f756967f9e9ca394464a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlobSHA([]byte(tt.data)))
		})
	}
}

func TestBlobSHA_ChangesWithContent(t *testing.T) {
	a := BlobSHA([]byte("Date,Name,Weight\n2026-01-01,User,72\n"))
	b := BlobSHA([]byte("Date,Name,Weight\n2026-01-01,User,71\n"))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 40)
}
