package bookings

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// WarningHeader acompaña a toda respuesta servida con el store degradado.
const WarningHeader = "X-Booking-Warning"

const maxImportBytes = 5 << 20

// RegisterRoutes asume que el router ya exige claims (middleware.RequireClaims).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/bookings", func(br chi.Router) {
		br.Get("/", listBookingsHandler(svc))
		br.Post("/", createBookingHandler(svc))

		br.Get("/export", exportBookingsHandler(svc))
		br.Post("/import", importBookingsHandler(svc))

		br.Get("/{bookingID}", getBookingHandler(svc))
		br.Put("/{bookingID}", updateBookingHandler(svc))
		br.Delete("/{bookingID}", deleteBookingHandler(svc))
	})
}

type bookingResponse struct {
	Booking
	ServiceLabel string `json:"serviceLabel"`
	FeesLabel    string `json:"feesLabel"`
	LastDate     Date   `json:"lastDate"`
	Nights       int    `json:"nights"`
}

type listBookingsResponse struct {
	Items   []bookingResponse `json:"items"`
	Warning string            `json:"warning,omitempty"`
}

type mutationResponse struct {
	Booking *bookingResponse `json:"booking,omitempty"`
	Deleted string           `json:"deleted,omitempty"`
	Warning string           `json:"warning,omitempty"`
}

type importResponse struct {
	Imported int    `json:"imported"`
	Warning  string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// listBookingsHandler godoc
// @Summary Listar reservas
// @Description Lista las reservas. Por defecto ordenadas por fecha de inicio descendente (vista de tabla); `order=listing` devuelve el orden del store. Si el store remoto falló se sirve la copia local y se informa en `warning` y en el header `X-Booking-Warning`.
// @Tags bookings
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param service query string false "Filtro por servicio: boarding | grooming"
// @Param order query string false "start_desc (default) | listing"
// @Success 200 {object} listBookingsResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /bookings [get]
func listBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("service")); raw != "" && raw != "all" {
			st, err := ParseServiceType(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "service must be boarding, grooming or all"})
				return
			}
			filter.ServiceType = &st
		}

		items, warn, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		if r.URL.Query().Get("order") != "listing" {
			SortNewestFirst(items)
		}

		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}

		setWarning(w, warn)
		writeJSON(w, http.StatusOK, listBookingsResponse{Items: out, Warning: string(warn)})
	}
}

// createBookingHandler godoc
// @Summary Crear reserva
// @Description Valida el formulario y crea la reserva. El id se genera si no viene. Boarding exige `endDate >= startDate`; en grooming `endDate` se descarta.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param payload body Form true "Formulario de reserva; fechas YYYY-MM-DD"
// @Success 201 {object} mutationResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /bookings [post]
func createBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Form
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		b, warn, err := svc.Create(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := toBookingResponse(b)
		setWarning(w, warn)
		writeJSON(w, http.StatusCreated, mutationResponse{Booking: &resp, Warning: string(warn)})
	}
}

// getBookingHandler godoc
// @Summary Obtener reserva
// @Tags bookings
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param bookingID path string true "ID de la reserva"
// @Success 200 {object} bookingResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {object} errorResponse
// @Router /bookings/{bookingID} [get]
func getBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bookingID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// updateBookingHandler godoc
// @Summary Editar reserva
// @Description Reemplaza los campos de la reserva. El id y el tipo de servicio no cambian: enviar otro `serviceType` responde 409.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param bookingID path string true "ID de la reserva"
// @Param payload body Form true "Formulario de reserva"
// @Success 200 {object} mutationResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /bookings/{bookingID} [put]
func updateBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Form
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		b, warn, err := svc.Update(r.Context(), chi.URLParam(r, "bookingID"), f)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := toBookingResponse(b)
		setWarning(w, warn)
		writeJSON(w, http.StatusOK, mutationResponse{Booking: &resp, Warning: string(warn)})
	}
}

// deleteBookingHandler godoc
// @Summary Borrar reserva
// @Description Idempotente: borrar un id inexistente responde 204 igual.
// @Tags bookings
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param bookingID path string true "ID de la reserva"
// @Success 204
// @Success 200 {object} mutationResponse "solo cuando hubo warning"
// @Failure 401 {string} string "unauthorized"
// @Router /bookings/{bookingID} [delete]
func deleteBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "bookingID")
		warn, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		if warn == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		setWarning(w, warn)
		writeJSON(w, http.StatusOK, mutationResponse{Deleted: id, Warning: string(warn)})
	}
}

// exportBookingsHandler godoc
// @Summary Exportar reservas
// @Description Descarga todas las reservas en el formato persistido (array JSON, camelCase).
// @Tags bookings
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Success 200 {array} Booking
// @Failure 401 {string} string "unauthorized"
// @Router /bookings/export [get]
func exportBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, warn, err := svc.Export(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		setWarning(w, warn)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="bookings.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// importBookingsHandler godoc
// @Summary Importar reservas
// @Description Reemplaza todas las reservas por el contenido del archivo exportado. Si algún registro es inválido no se modifica nada.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param payload body []Booking true "Array exportado"
// @Success 200 {object} importResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /bookings/import [post]
func importBookingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "payload too large or unreadable"})
			return
		}

		n, warn, err := svc.Import(r.Context(), data)
		if err != nil {
			writeError(w, err)
			return
		}

		setWarning(w, warn)
		writeJSON(w, http.StatusOK, importResponse{Imported: n, Warning: string(warn)})
	}
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		Booking:      b,
		ServiceLabel: b.ServiceType.Label(),
		FeesLabel:    FormatFees(b.TotalFees),
		LastDate:     b.LastDate(),
		Nights:       b.Nights(),
	}
}

func setWarning(w http.ResponseWriter, warn Warning) {
	if warn != "" {
		w.Header().Set(WarningHeader, string(warn))
	}
}

func writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, ErrInvalidImport):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "booking not found"})
	case errors.Is(err, ErrServiceTypeChange), errors.Is(err, ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// writeJSON también vive en calendar y dashboard.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
