package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"parking-lot/internal/logging"
	"parking-lot/internal/parking"
)

// Handler serves one lot to every HTTP client. The router is not safe for
// concurrent use, so every call into it holds mu.
type Handler struct {
	serviceName string
	router      *parking.Router
	mu          sync.Mutex
}

func NewHandler(serviceName string, router *parking.Router) *Handler {
	return &Handler{
		serviceName: serviceName,
		router:      router,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Meta:    extractMeta(r.Context()),
	})
}

func (h *Handler) CreateParkingLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParkingLotCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateStruct(req); err != nil {
		WriteValidationError(ctx, w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.router.CreateLot(ctx, *req.Capacity); err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Parking lot created successfully", map[string]any{
		"capacity": *req.Capacity,
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParkVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateStruct(req); err != nil {
		WriteValidationError(ctx, w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	slotNumber, err := h.router.Park(ctx, req.Registration, req.Color)
	if err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", ParkVehicleResponse{
		SlotNumber:   slotNumber,
		Registration: req.Registration,
		Color:        req.Color,
	})
}

func (h *Handler) LeaveSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req LeaveSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateStruct(req); err != nil {
		WriteValidationError(ctx, w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.router.Leave(ctx, req.SlotNumber); err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Slot vacated successfully", map[string]any{
		"slot_number": req.SlotNumber,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	lot, err := h.router.ActiveLot()
	if err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	snapshot := lot.Snapshot(ctx)
	slots := make([]SlotStatus, 0, len(snapshot))
	occupied := 0

	for _, s := range snapshot {
		status := SlotStatus{SlotNumber: s.Number, Occupied: s.Occupied()}
		if s.Occupied() {
			occupied++
			status.Registration = s.Vehicle.Registration()
			status.Color = s.Vehicle.Color()
		}
		slots = append(slots, status)
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", StatusResponse{
		Capacity:  lot.Capacity(),
		Occupied:  occupied,
		Available: lot.Capacity() - occupied,
		Slots:     slots,
	})
}

func (h *Handler) FindByRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	registration := chi.URLParam(r, "registration")
	if registration == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Registration number is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	lot, err := h.router.ActiveLot()
	if err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	slotNumber, ok := lot.SlotNumberForRegistration(ctx, registration)
	if !ok {
		WriteError(ctx, w, http.StatusNotFound, "Not found")
		return
	}

	vehicle := lot.Snapshot(ctx)[slotNumber-1].Vehicle

	WriteSuccess(ctx, w, "Vehicle found", FindVehicleResponse{
		SlotNumber:   slotNumber,
		Registration: vehicle.Registration(),
		Color:        vehicle.Color(),
	})
}

func (h *Handler) RegistrationsByColour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	colour := chi.URLParam(r, "colour")

	h.mu.Lock()
	defer h.mu.Unlock()

	lot, err := h.router.ActiveLot()
	if err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Registrations retrieved successfully", ColourRegistrationsResponse{
		Colour:        colour,
		Registrations: lot.RegistrationsByColor(ctx, colour),
	})
}

func (h *Handler) SlotsByColour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	colour := chi.URLParam(r, "colour")

	h.mu.Lock()
	defer h.mu.Unlock()

	lot, err := h.router.ActiveLot()
	if err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Slot numbers retrieved successfully", ColourSlotsResponse{
		Colour:      colour,
		SlotNumbers: lot.SlotNumbersByColor(ctx, colour),
	})
}

// ExecuteCommand runs one line of the text protocol. A non-integer
// argument only rejects the request.
func (h *Handler) ExecuteCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateStruct(req); err != nil {
		WriteValidationError(ctx, w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	response, err := h.router.Handle(ctx, req.Command)
	if err != nil {
		h.writeParkingError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Command executed", CommandResponse{
		Command:  req.Command,
		Response: response,
	})
}

// occupancy reads capacity and occupied count for the metrics collector.
func (h *Handler) occupancy() (capacity, occupied int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	lot, err := h.router.ActiveLot()
	if err != nil {
		return 0, 0, false
	}
	return lot.Capacity(), lot.Occupied(), true
}

func (h *Handler) writeParkingError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, parking.ErrNoParkingLot):
		WriteError(ctx, w, http.StatusBadRequest, "Parking lot not created. Create parking lot first")
	case errors.Is(err, parking.ErrLotFull):
		WriteError(ctx, w, http.StatusConflict, "Sorry, parking lot is full")
	case errors.Is(err, parking.ErrIndexOutOfRange),
		errors.Is(err, parking.ErrInvalidCapacity),
		errors.Is(err, parking.ErrNonIntegerArgument),
		errors.Is(err, parking.ErrUnknownCommand),
		errors.Is(err, parking.ErrMalformedCommand):
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
	default:
		logging.Error(ctx).Err(err).Str("path", r.URL.Path).Msg("unexpected parking error")
		WriteError(ctx, w, http.StatusInternalServerError, "Internal server error")
	}
}
