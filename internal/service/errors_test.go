package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luke-tf/finanapp/internal/storage"
)

func TestClassify_NilStaysNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassify_TypedErrorPassesThroughUnchanged(t *testing.T) {
	original := NewValidationError("title must not be empty")

	got := Classify(original)
	assert.Same(t, original, got, "typed errors must never be re-wrapped")

	wrapped := fmt.Errorf("handler: %w", original)
	got = Classify(wrapped)
	assert.Same(t, original, got)
}

func TestClassify_StorageSentinels(t *testing.T) {
	err := fmt.Errorf("deleting: %w", storage.ErrNotFound)
	got := Classify(err)
	assert.Equal(t, KindStorage, got.Kind)

	err = fmt.Errorf("oops: %w", storage.ErrInvalidID)
	got = Classify(err)
	assert.Equal(t, KindValidation, got.Kind)
}

func TestClassify_KeywordHeuristic(t *testing.T) {
	tests := []struct {
		msg  string
		want ErrorKind
	}{
		{"database is locked", KindStorage},
		{"unable to open SQLite file", KindStorage},
		{"disk I/O error", KindStorage},
		{"no such table: records", KindStorage},
		{"something inexplicable", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := Classify(errors.New(tt.msg))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestError_MessageAndDetails(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStorageError("Could not save the record", cause)

	assert.Equal(t, "Could not save the record", err.Message)
	assert.Equal(t, "database is locked", err.Details())
	assert.Contains(t, err.Error(), "Could not save the record")
	assert.ErrorIs(t, err, cause)

	validation := NewValidationError("amount must be greater than zero")
	assert.Empty(t, validation.Details())
	assert.Equal(t, "amount must be greater than zero", validation.Error())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "storage", KindStorage.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
