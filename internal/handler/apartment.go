package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/apartment-booking/internal/booking"
    "github.com/iliyamo/apartment-booking/internal/model"
    "github.com/iliyamo/apartment-booking/internal/repository"
)

// ApartmentHandler serves public listing browsing and owner-side
// listing management.
type ApartmentHandler struct {
    Apartments *repository.ApartmentRepo
}

func NewApartmentHandler(apartments *repository.ApartmentRepo) *ApartmentHandler {
    if apartments == nil {
        panic("nil repository passed to NewApartmentHandler")
    }
    return &ApartmentHandler{Apartments: apartments}
}

// apartmentView is the public response shape for one listing. The
// nightly rate is serialized as a decimal string; smart lock IDs stay
// internal.
type apartmentView struct {
    ID            uint64          `json:"id"`
    Title         string          `json:"title"`
    Address       string          `json:"address"`
    Description   string          `json:"description"`
    PricePerNight decimal.Decimal `json:"price_per_night"`
}

func toApartmentView(a *model.Apartment) apartmentView {
    return apartmentView{
        ID:            a.ID,
        Title:         a.Title,
        Address:       a.Address,
        Description:   a.Description,
        PricePerNight: a.PricePerNight,
    }
}

// List handles GET /v1/apartments. It returns all listings currently
// accepting bookings. This endpoint sits behind the Redis response
// cache: listings change rarely and quotes are computed elsewhere.
func (h *ApartmentHandler) List(c echo.Context) error {
    items, err := h.Apartments.ListAvailable(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load apartments"})
    }
    views := make([]apartmentView, 0, len(items))
    for i := range items {
        views = append(views, toApartmentView(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}

type createApartmentReq struct {
    Title         string  `json:"title"`
    Address       string  `json:"address"`
    Description   string  `json:"description"`
    PricePerNight string  `json:"price_per_night"`
    SmartLockID   *string `json:"smart_lock_id"`
}

// Create handles POST /v1/apartments. The authenticated user becomes
// the owner of the new listing.
func (h *ApartmentHandler) Create(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createApartmentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    req.Address = strings.TrimSpace(req.Address)
    if req.Title == "" || req.Address == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and address are required"})
    }
    price, err := decimal.NewFromString(req.PricePerNight)
    if err != nil || price.IsNegative() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_per_night"})
    }

    id, err := h.Apartments.Create(c.Request().Context(), ownerID, req.Title, req.Address, req.Description, price, req.SmartLockID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create apartment"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

type setAvailabilityReq struct {
    Available *bool `json:"available"`
}

// SetAvailability handles PATCH /v1/apartments/:id/availability. It
// flips the listing-level switch; only the owner may do so. Existing
// bookings are untouched; the switch only gates new creations.
func (h *ApartmentHandler) SetAvailability(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
    }
    var req setAvailabilityReq
    if err := c.Bind(&req); err != nil || req.Available == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "available is required"})
    }

    if err := h.Apartments.SetAvailability(c.Request().Context(), id, ownerID, *req.Available); err != nil {
        if errors.Is(err, booking.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update apartment"})
    }
    return c.NoContent(http.StatusNoContent)
}
