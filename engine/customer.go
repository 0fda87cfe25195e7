package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"backend/models"
)

func (s *Store) AddCustomer(name, phone string) (models.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return models.Customer{}, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	var created models.Customer
	err := s.mutate(func(snap *Snapshot) error {
		c := models.Customer{
			ID:      uuid.NewString(),
			Name:    name,
			Phone:   phone,
			History: []models.Sale{},
		}
		snap.Customers = append(snap.Customers, c)
		created = c
		return nil
	})
	return created, err
}

func (s *Store) UpdateCustomer(id, name, phone string) (models.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return models.Customer{}, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	var updated models.Customer
	err := s.mutate(func(snap *Snapshot) error {
		c, err := findCustomer(snap, id)
		if err != nil {
			return err
		}
		c.Name = name
		c.Phone = phone
		updated = *c
		return nil
	})
	return updated, err
}

// SetCustomerAvatar stores the avatar URL produced by the upload pipeline.
func (s *Store) SetCustomerAvatar(id, url string) error {
	return s.mutate(func(snap *Snapshot) error {
		c, err := findCustomer(snap, id)
		if err != nil {
			return err
		}
		c.AvatarURL = url
		return nil
	})
}

func (s *Store) DeleteCustomer(id string) error {
	return s.mutate(func(snap *Snapshot) error {
		for i := range snap.Customers {
			if snap.Customers[i].ID == id {
				snap.Customers = append(snap.Customers[:i], snap.Customers[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: customer %s", ErrNotFound, id)
	})
}

func (s *Store) Customers() []models.Customer {
	snap := s.Snapshot()
	return snap.Customers
}

func (s *Store) Batches() []models.Batch {
	snap := s.Snapshot()
	return snap.Batches
}
