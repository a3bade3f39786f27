package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/middleware"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/query"
	"github.com/roamly/travel-buddy-backend/internal/service"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// TripHandler handles trip-related requests
type TripHandler struct {
	tripService     *service.TripService
	deepLinkBaseURL string
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripService *service.TripService, deepLinkBaseURL string) *TripHandler {
	return &TripHandler{
		tripService:     tripService,
		deepLinkBaseURL: deepLinkBaseURL,
	}
}

// Create handles POST /trips
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.CreateTripRequest
	file, ok := decodeBodyWithFile(w, r, &req)
	if !ok {
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	trip, err := h.tripService.Create(r.Context(), claims.UserID, req, file)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Trip created successfully", model.NewTripResponse(trip, nil))
}

// List handles GET /trips - paginated, filtered trip listing.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	filters := parseFilters(values, query.TripFields)
	opts := parsePageOptions(values)

	page, diags, err := h.tripService.List(r.Context(), filters, values.Get("searchTerm"), opts)
	if err != nil {
		respondAppError(w, err)
		return
	}
	logDiagnostics("trip", diags)

	respondPage(w, page)
}

// GetByID handles GET /trips/{id}
func (h *TripHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}

	trip, owner, err := h.tripService.Get(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Trip retrieved successfully", model.NewTripResponse(trip, owner))
}

// Update handles PUT /trips/{id}
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}

	var req model.UpdateTripRequest
	file, ok := decodeBodyWithFile(w, r, &req)
	if !ok {
		return
	}
	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	trip, err := h.tripService.Update(r.Context(), claims.UserID, claims.Role, id, req, file)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Trip updated successfully", model.NewTripResponse(trip, nil))
}

// Delete handles DELETE /trips/{id}
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	id, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}

	if err := h.tripService.Delete(r.Context(), claims.UserID, claims.Role, id); err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Trip deleted successfully", nil)
}

// GenerateQR handles GET /trips/{id}/qr - a PNG QR code encoding the
// trip's deep link.
func (h *TripHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "tripId")
	if !ok {
		return
	}

	// Confirm the trip exists before minting a link for it.
	if _, _, err := h.tripService.Get(r.Context(), id); err != nil {
		respondAppError(w, err)
		return
	}

	deepLink := h.deepLinkBaseURL + "/" + id.String()
	qrc, err := qrcode.New(deepLink)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate QR code", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	writer := standard.NewWithWriter(nopWriteCloser{w},
		standard.WithQRWidth(10),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(writer); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to write QR code", nil)
		return
	}
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name+" parameter", nil)
		return uuid.Nil, false
	}
	return id, true
}

// nopWriteCloser lets the QR writer treat the response body as a
// closable stream.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
