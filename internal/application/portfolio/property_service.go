package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

// PropertyService provides application-level property operations
type PropertyService struct {
	propertyRepo portfolio.PropertyRepository
	ownerRepo    portfolio.OwnerRepository
	leaseRepo    portfolio.LeaseRepository
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo portfolio.PropertyRepository,
	ownerRepo portfolio.OwnerRepository,
	leaseRepo portfolio.LeaseRepository,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		ownerRepo:    ownerRepo,
		leaseRepo:    leaseRepo,
		recorder:     recorder,
		clock:        clock,
	}
}

// AddressRequest carries address fields on property requests
type AddressRequest struct {
	Street string `json:"street" binding:"required"`
	Unit   string `json:"unit"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

func (r AddressRequest) toAddress() (valueobject.Address, error) {
	return valueobject.NewAddress(r.Street, r.City, r.State, r.Zip, valueobject.WithUnit(r.Unit))
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID          uuid.UUID           `json:"id"`
	OwnerID     uuid.UUID           `json:"owner_id"`
	Address     valueobject.Address `json:"address"`
	FullAddress string              `json:"full_address"`
	Bedrooms    int                 `json:"bedrooms"`
	Bathrooms   int                 `json:"bathrooms"`
	YearBuilt   int                 `json:"year_built,omitempty"`
	Status      string              `json:"status"`
	VacantSince *time.Time          `json:"vacant_since,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	OwnerID   uuid.UUID      `json:"owner_id" binding:"required"`
	Address   AddressRequest `json:"address" binding:"required"`
	Bedrooms  int            `json:"bedrooms" binding:"min=0"`
	Bathrooms int            `json:"bathrooms" binding:"min=0"`
	YearBuilt int            `json:"year_built"`
	Status    string         `json:"status"`
	Notes     string         `json:"notes"`
}

// UpdatePropertyRequest represents a request to update property details
type UpdatePropertyRequest struct {
	Address   AddressRequest `json:"address" binding:"required"`
	Bedrooms  int            `json:"bedrooms" binding:"min=0"`
	Bathrooms int            `json:"bathrooms" binding:"min=0"`
	YearBuilt int            `json:"year_built"`
	Notes     string         `json:"notes"`
}

// ChangePropertyStatusRequest represents a status change
type ChangePropertyStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PropertyListFilter defines filtering options for property list queries
type PropertyListFilter struct {
	OwnerID  string `form:"owner_id"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateProperty creates a new property under an existing owner
func (s *PropertyService) CreateProperty(ctx context.Context, actorID string, req CreatePropertyRequest) (*PropertyResponse, error) {
	if _, err := s.ownerRepo.FindByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	address, err := req.Address.toAddress()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	property, err := portfolio.NewProperty(req.OwnerID, address, portfolio.PropertyStatus(req.Status), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := property.UpdateDetails(address, req.Bedrooms, req.Bathrooms, req.YearBuilt, req.Notes, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "property", property.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: property.Address.FullAddress()}, actorID)

	return toPropertyResponse(property), nil
}

// GetProperty gets a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(property), nil
}

// ListProperties lists properties with filtering
func (s *PropertyService) ListProperties(ctx context.Context, filter PropertyListFilter) ([]PropertyResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.OwnerID != "" {
		ownerID, err := uuid.Parse(filter.OwnerID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid owner id")
		}
		f.Filters["owner_id"] = ownerID
	}
	if filter.Status != "" {
		status := portfolio.PropertyStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Invalid property status: "+filter.Status)
		}
		f.Filters["status"] = status.String()
	}

	properties, err := s.propertyRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, *toPropertyResponse(&properties[i]))
	}
	return responses, total, nil
}

// UpdateProperty updates a property's descriptive details
func (s *PropertyService) UpdateProperty(ctx context.Context, actorID string, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	address, err := req.Address.toAddress()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	if err := property.UpdateDetails(address, req.Bedrooms, req.Bathrooms, req.YearBuilt, req.Notes, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "property", property.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"details"}}, actorID)

	return toPropertyResponse(property), nil
}

// ChangeStatus moves a property through its status machine
func (s *PropertyService) ChangeStatus(ctx context.Context, actorID string, id uuid.UUID, req ChangePropertyStatusRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := property.Status
	if err := property.ChangeStatus(portfolio.PropertyStatus(req.Status), s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "property", property.ID, audit.ActionStatusChanged,
		audit.StatusChangedDetails{From: from.String(), To: property.Status.String()}, actorID)

	return toPropertyResponse(property), nil
}

// DeleteProperty deletes a property. Properties with an active lease
// cannot be deleted.
func (s *PropertyService) DeleteProperty(ctx context.Context, actorID string, id uuid.UUID) error {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.leaseRepo.CountActiveByProperty(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return shared.NewDomainError("PROPERTY_HAS_ACTIVE_LEASE",
			"An active lease is attached to this property")
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "property", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: property.Address.FullAddress()}, actorID)
	return nil
}

func toPropertyResponse(property *portfolio.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:          property.ID,
		OwnerID:     property.OwnerID,
		Address:     property.Address,
		FullAddress: property.Address.FullAddress(),
		Bedrooms:    property.Bedrooms,
		Bathrooms:   property.Bathrooms,
		YearBuilt:   property.YearBuilt,
		Status:      property.Status.String(),
		VacantSince: property.VacantSince,
		Notes:       property.Notes,
		CreatedAt:   property.CreatedAt,
		UpdatedAt:   property.UpdatedAt,
	}
}
