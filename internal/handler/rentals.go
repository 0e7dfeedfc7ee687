package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateBuilding handles building creation
func (h *Handler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var b models.Building
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if b.Name == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	created, err := h.svc.CreateBuilding(r.Context(), &b)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListBuildings lists the authenticated user's buildings
func (h *Handler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.svc.ListBuildings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildings)
}

// UpdateBuilding updates a building
func (h *Handler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid building id"})
		return
	}
	var b models.Building
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	b.ID = id

	updated, err := h.svc.UpdateBuilding(r.Context(), &b)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteBuilding removes a building
func (h *Handler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid building id"})
		return
	}
	if err := h.svc.DeleteBuilding(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateApartment handles apartment creation
func (h *Handler) CreateApartment(w http.ResponseWriter, r *http.Request) {
	var a models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if a.BuildingID == 0 || a.Code == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "building_id and code are required"})
		return
	}

	created, err := h.svc.CreateApartment(r.Context(), &a)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListApartments lists a building's apartments
func (h *Handler) ListApartments(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.ParseInt(r.URL.Query().Get("building_id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid building_id"})
		return
	}
	apartments, err := h.svc.ListApartments(r.Context(), buildingID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, apartments)
}

// UpdateApartment updates an apartment
func (h *Handler) UpdateApartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid apartment id"})
		return
	}
	var a models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	a.ID = id

	updated, err := h.svc.UpdateApartment(r.Context(), &a)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteApartment removes an apartment
func (h *Handler) DeleteApartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid apartment id"})
		return
	}
	if err := h.svc.DeleteApartment(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type contractRequest struct {
	ApartmentID   int64           `json:"apartment_id"`
	TenantName    string          `json:"tenant_name"`
	TenantPhone   string          `json:"tenant_phone"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	MonthlyRent   decimal.Decimal `json:"monthly_rent"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Status        string          `json:"status"`
}

func (req *contractRequest) toModel() (*models.Contract, error) {
	start, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateFormat, req.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.Contract{
		ApartmentID:   req.ApartmentID,
		TenantName:    req.TenantName,
		TenantPhone:   req.TenantPhone,
		StartDate:     start,
		EndDate:       end,
		MonthlyRent:   req.MonthlyRent,
		DepositAmount: req.DepositAmount,
		Status:        req.Status,
	}, nil
}

// CreateContract handles contract creation
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	c, err := req.toModel()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid contract dates"})
		return
	}

	created, err := h.svc.CreateContract(r.Context(), c)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListContracts lists an apartment's contracts
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := strconv.ParseInt(r.URL.Query().Get("apartment_id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid apartment_id"})
		return
	}
	contracts, err := h.svc.ListContracts(r.Context(), apartmentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contracts)
}

// UpdateContract updates a contract
func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid contract id"})
		return
	}
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	c, err := req.toModel()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid contract dates"})
		return
	}
	c.ID = id

	updated, err := h.svc.UpdateContract(r.Context(), c)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteContract removes a contract
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid contract id"})
		return
	}
	if err := h.svc.DeleteContract(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type depositRequest struct {
	ContractID   int64           `json:"contract_id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	AccountLabel string          `json:"account_label"`
	Date         string          `json:"date"`
	Note         string          `json:"note"`
}

func (req *depositRequest) toModel() (*models.Deposit, error) {
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, err
	}
	return &models.Deposit{
		ContractID:   req.ContractID,
		Kind:         req.Kind,
		Amount:       req.Amount,
		AccountLabel: req.AccountLabel,
		Date:         date,
		Note:         req.Note,
	}, nil
}

// CreateDeposit handles deposit receipt creation
func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	d, err := req.toModel()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid deposit date"})
		return
	}

	created, err := h.svc.CreateDeposit(r.Context(), d)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListDeposits lists a contract's deposit receipts
func (h *Handler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	contractID, err := strconv.ParseInt(r.URL.Query().Get("contract_id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid contract_id"})
		return
	}
	deposits, err := h.svc.ListDeposits(r.Context(), contractID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deposits)
}

// UpdateDeposit updates a deposit receipt
func (h *Handler) UpdateDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid deposit id"})
		return
	}
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	d, err := req.toModel()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid deposit date"})
		return
	}
	d.ID = id

	updated, err := h.svc.UpdateDeposit(r.Context(), d)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteDeposit removes a deposit receipt
func (h *Handler) DeleteDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid deposit id"})
		return
	}
	if err := h.svc.DeleteDeposit(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
