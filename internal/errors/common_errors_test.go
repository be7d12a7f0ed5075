package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	err := NewNotFoundError("data file missing", fs.ErrNotExist)

	assert.Equal(t, "[NOT_FOUND] data file missing: file does not exist", err.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	bare := NewAppValidationError("bad input")
	assert.Equal(t, "[VALIDATION] bad input", bare.Error())
}

func TestAppError_WithContext(t *testing.T) {
	err := (&AppError{Type: ErrTypeSchema, Message: "missing column"}).
		WithContext("column", "Desenvolvedor")

	assert.Equal(t, "Desenvolvedor", err.Context["column"])
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("reload: %w", NewParsingError("bad workbook", nil))

	typ, ok := TypeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrTypeParsing, typ)

	_, ok = TypeOf(errors.New("plain"))
	assert.False(t, ok)
}
