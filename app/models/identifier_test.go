package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	valid := NewID()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid id", raw: valid.String()},
		{name: "empty", raw: "", wantErr: true},
		{name: "object id", raw: "507f1f77bcf86cd799439011", wantErr: true},
		{name: "garbage", raw: "not-an-id", wantErr: true},
		{name: "nil uuid", raw: "00000000-0000-0000-0000-000000000000", wantErr: true},
		{name: "urn form", raw: "urn:uuid:" + valid.String(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.raw, "post ID")
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, valid, id)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidIdentifier))
			var idErr *InvalidIdentifierError
			assert.True(t, errors.As(err, &idErr))
			assert.Equal(t, "post ID", idErr.Label)
			assert.Equal(t, "invalid post ID format", err.Error())
		})
	}
}

func TestNewIDIsTimeOrdered(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.Less(t, a.String(), b.String())
}
