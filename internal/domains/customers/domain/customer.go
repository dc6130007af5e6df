package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrEmptyEmail   = errors.New("customer email is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer is the buyer an order is placed for.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(id, name, email string) (*Customer, error) {
	customer := &Customer{ID: id}
	if err := customer.Rename(name); err != nil {
		return nil, err
	}
	if err := customer.ChangeEmail(email); err != nil {
		return nil, err
	}
	return customer, nil
}

// Rename trims and validates the display name.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// ChangeEmail normalizes the address to lower case.
func (c *Customer) ChangeEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.Rename(c.Name); err != nil {
		return err
	}
	return c.ChangeEmail(c.Email)
}
