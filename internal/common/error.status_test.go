package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_NoDocuments(t *testing.T) {
	err := ConvertMongoError(mongo.ErrNoDocuments)
	assert.True(t, errors.Is(err, ErrNotFound), "ErrNoDocuments phải chuyển thành ErrNotFound")
}

func TestConvertMongoError_KeepsNotFound(t *testing.T) {
	err := ConvertMongoError(ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("tìm post: %w", ErrNotFound)
	err = ConvertMongoError(wrapped)
	assert.True(t, errors.Is(err, ErrNotFound), "wrapped ErrNotFound phải được giữ nguyên")
}

func TestConvertMongoError_Nil(t *testing.T) {
	assert.NoError(t, ConvertMongoError(nil))
}

func TestErrorIs(t *testing.T) {
	err := NewError(ErrCodeAuthToken, MsgTokenExpired, StatusUnauthorized, nil)
	assert.True(t, errors.Is(err, ErrTokenExpired))
	assert.False(t, errors.Is(err, ErrTokenInvalid))
	assert.False(t, errors.Is(err, nil))
}

func TestNewError_CarriesStatusCode(t *testing.T) {
	err := NewError(ErrCodeGeneration, "Lỗi sinh nội dung", StatusBadGateway, nil)

	var customErr *Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, StatusBadGateway, customErr.StatusCode)
	assert.Equal(t, ErrCodeGeneration.Code, customErr.Code.Code)
	assert.Equal(t, "Lỗi sinh nội dung", customErr.Error())
}
