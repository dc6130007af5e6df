package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCustomer_NormalizesFields(t *testing.T) {
	customer, err := NewCustomer("c-1", "  Ada Lovelace ", " ADA@Example.com ")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", customer.Name)
	require.Equal(t, "ada@example.com", customer.Email)
}

func TestNewCustomer_RejectsInvalidInput(t *testing.T) {
	_, err := NewCustomer("c-1", " ", "ada@example.com")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewCustomer("c-1", "Ada", "")
	require.ErrorIs(t, err, ErrEmptyEmail)

	_, err = NewCustomer("c-1", "Ada", "ada.example.com")
	require.ErrorIs(t, err, ErrInvalidEmail)
}
