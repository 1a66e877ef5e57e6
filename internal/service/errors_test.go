package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestValidationError_ErrorIsStable(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("text", "Обязательное поле.")
	verr.Add("group", "Неверная группа.")

	assert.Equal(t, "ошибка валидации: group: Неверная группа.; text: Обязательное поле.", verr.Error())
	assert.False(t, verr.Empty())
}

func TestValidateForm_UsesFormTagNames(t *testing.T) {
	err := validateForm(NewValidator(), PostForm{Group: "bad slug"})

	verr, ok := err.(*ValidationError)
	if assert.True(t, ok) {
		assert.Equal(t, "Обязательное поле.", verr.Fields["text"])
		assert.Contains(t, verr.Fields, "group")
	}
}

func TestHealthService_Check(t *testing.T) {
	m := newMocks()
	m.tables.On("CountTablesDB", mock.Anything).Return(6, nil)

	count, err := NewHealthService(m.tables).Check(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 6, count)
}
