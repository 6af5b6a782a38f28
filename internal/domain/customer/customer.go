package customer

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("customer: not found")
	ErrNameRequired = errors.New("customer: first and last name are required")
)

// Customer holds contact details and an append-only order history. Orders are
// referenced by id; the order repository owns the records.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	OrderIDs  []string
}

func New(id, firstName, lastName, email, phone, address string) (*Customer, error) {
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	return &Customer{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Address:   address,
	}, nil
}

func (c *Customer) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

// AddOrder appends an order to the customer's history.
func (c *Customer) AddOrder(orderID string) {
	c.OrderIDs = append(c.OrderIDs, orderID)
}

// UpdateContact overwrites any non-empty contact field, leaving the rest untouched.
func (c *Customer) UpdateContact(email, phone, address string) {
	if email != "" {
		c.Email = email
	}
	if phone != "" {
		c.Phone = phone
	}
	if address != "" {
		c.Address = address
	}
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	clone.OrderIDs = append([]string(nil), c.OrderIDs...)
	return &clone
}
