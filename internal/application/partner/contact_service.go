package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/partner"
	"github.com/orderhub/backend/internal/domain/shared"
)

// CreateContactInput contains the input for creating a delivery contact
type CreateContactInput struct {
	UserID    uuid.UUID
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// UpdateContactInput contains optional field changes for a contact
type UpdateContactInput struct {
	UserID    uuid.UUID
	ContactID uuid.UUID
	City      *string
	Street    *string
	House     *string
	Structure *string
	Building  *string
	Apartment *string
	Phone     *string
}

// ContactDTO is the transport form of a delivery contact
type ContactDTO struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Structure string    `json:"structure,omitempty"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// ToContactDTO maps a contact to its transport form
func ToContactDTO(c *partner.Contact) ContactDTO {
	return ContactDTO{
		ID:        c.ID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Structure: c.Structure,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
}

// ContactService manages a user's delivery contacts
type ContactService struct {
	contactRepo partner.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo partner.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{contactRepo: contactRepo, logger: logger}
}

// CreateContact adds a delivery contact, enforcing the per-user limit
func (s *ContactService) CreateContact(ctx context.Context, input CreateContactInput) (*ContactDTO, error) {
	count, err := s.contactRepo.CountByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if count >= partner.MaxContactsPerUser {
		return nil, shared.NewDomainError("CONTACT_LIMIT",
			fmt.Sprintf("A user can have at most %d contacts", partner.MaxContactsPerUser))
	}

	contact, err := partner.NewContact(input.UserID, input.City, input.Street, input.Phone)
	if err != nil {
		return nil, err
	}
	contact.SetAddressDetails(input.House, input.Structure, input.Building, input.Apartment)

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		s.logger.Error("Failed to save contact", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save contact")
	}

	dto := ToContactDTO(contact)
	return &dto, nil
}

// ListContacts returns all of the user's contacts
func (s *ContactService) ListContacts(ctx context.Context, userID uuid.UUID) ([]ContactDTO, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ContactDTO, 0, len(contacts))
	for i := range contacts {
		dtos = append(dtos, ToContactDTO(&contacts[i]))
	}
	return dtos, nil
}

// UpdateContact applies partial changes to one of the user's contacts
func (s *ContactService) UpdateContact(ctx context.Context, input UpdateContactInput) (*ContactDTO, error) {
	contact, err := s.contactRepo.FindByIDForUser(ctx, input.UserID, input.ContactID)
	if err != nil {
		return nil, err
	}

	contact.Update(input.City, input.Street, input.Phone)

	house, structure := contact.House, contact.Structure
	building, apartment := contact.Building, contact.Apartment
	if input.House != nil {
		house = *input.House
	}
	if input.Structure != nil {
		structure = *input.Structure
	}
	if input.Building != nil {
		building = *input.Building
	}
	if input.Apartment != nil {
		apartment = *input.Apartment
	}
	contact.SetAddressDetails(house, structure, building, apartment)

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		s.logger.Error("Failed to update contact", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update contact")
	}

	dto := ToContactDTO(contact)
	return &dto, nil
}

// DeleteContacts removes the user's contacts matching ids, returning the
// number deleted
func (s *ContactService) DeleteContacts(ctx context.Context, userID uuid.UUID, contactIDs []uuid.UUID) (int64, error) {
	if len(contactIDs) == 0 {
		return 0, nil
	}
	return s.contactRepo.DeleteForUser(ctx, userID, contactIDs)
}
