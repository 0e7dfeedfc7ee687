package service

import (
	"context"

	"github.com/minhlp/rental-service/internal/models"
)

// CreateBuilding creates a building for the authenticated user
func (s *Service) CreateBuilding(ctx context.Context, b *models.Building) (*models.Building, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	b.UserID = userID
	if err := s.repo.CreateBuilding(ctx, b); err != nil {
		return nil, err
	}
	s.log.Infof("Building created for user %d: %s", userID, b.Name)
	return b, nil
}

// ListBuildings lists the authenticated user's buildings
func (s *Service) ListBuildings(ctx context.Context) ([]models.Building, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindBuildingsByUserID(ctx, userID)
}

// UpdateBuilding updates one of the authenticated user's buildings
func (s *Service) UpdateBuilding(ctx context.Context, b *models.Building) (*models.Building, error) {
	if _, err := s.ownedBuilding(ctx, b.ID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBuilding(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBuilding removes one of the authenticated user's buildings
func (s *Service) DeleteBuilding(ctx context.Context, id int64) error {
	if _, err := s.ownedBuilding(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteBuilding(ctx, id)
}

func (s *Service) ownedBuilding(ctx context.Context, id int64) (*models.Building, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.FindBuildingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// CreateApartment creates an apartment in one of the user's buildings
func (s *Service) CreateApartment(ctx context.Context, a *models.Apartment) (*models.Apartment, error) {
	if _, err := s.ownedBuilding(ctx, a.BuildingID); err != nil {
		return nil, err
	}
	if a.Status == "" {
		a.Status = models.ApartmentAvailable
	}
	if err := s.repo.CreateApartment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListApartments lists the apartments of one of the user's buildings
func (s *Service) ListApartments(ctx context.Context, buildingID int64) ([]models.Apartment, error) {
	if _, err := s.ownedBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.repo.FindApartmentsByBuildingID(ctx, buildingID)
}

// UpdateApartment updates an apartment in one of the user's buildings
func (s *Service) UpdateApartment(ctx context.Context, a *models.Apartment) (*models.Apartment, error) {
	existing, err := s.repo.FindApartmentByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBuilding(ctx, existing.BuildingID); err != nil {
		return nil, err
	}
	a.BuildingID = existing.BuildingID
	if err := s.repo.UpdateApartment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteApartment removes an apartment from one of the user's buildings
func (s *Service) DeleteApartment(ctx context.Context, id int64) error {
	existing, err := s.repo.FindApartmentByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedBuilding(ctx, existing.BuildingID); err != nil {
		return err
	}
	return s.repo.DeleteApartment(ctx, id)
}

// CreateContract creates a rental contract and marks the apartment rented
func (s *Service) CreateContract(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	apartment, err := s.repo.FindApartmentByID(ctx, c.ApartmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBuilding(ctx, apartment.BuildingID); err != nil {
		return nil, err
	}

	if c.Status == "" {
		c.Status = models.ContractActive
	}
	if err := s.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}

	apartment.Status = models.ApartmentRented
	if err := s.repo.UpdateApartment(ctx, apartment); err != nil {
		s.log.Warnf("Failed to mark apartment %d rented: %v", apartment.ID, err)
	}
	return c, nil
}

// ListContracts lists the contracts of an apartment
func (s *Service) ListContracts(ctx context.Context, apartmentID int64) ([]models.Contract, error) {
	apartment, err := s.repo.FindApartmentByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBuilding(ctx, apartment.BuildingID); err != nil {
		return nil, err
	}
	return s.repo.FindContractsByApartmentID(ctx, apartmentID)
}

// UpdateContract updates a contract
func (s *Service) UpdateContract(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	if _, err := s.ownedContract(ctx, c.ID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContract(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContract removes a contract
func (s *Service) DeleteContract(ctx context.Context, id int64) error {
	if _, err := s.ownedContract(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteContract(ctx, id)
}

// ownedContract checks the contract belongs to the authenticated user via
// its apartment's building, and returns it with the owner id.
func (s *Service) ownedContract(ctx context.Context, id int64) (*models.Contract, error) {
	c, err := s.repo.FindContractByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apartment, err := s.repo.FindApartmentByID(ctx, c.ApartmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBuilding(ctx, apartment.BuildingID); err != nil {
		return nil, err
	}
	return c, nil
}
