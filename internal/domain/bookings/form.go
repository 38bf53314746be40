package bookings

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar errores con el nombre JSON del campo (catName, endDate, ...).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Form es lo que captura el formulario de reserva (crear o editar).
type Form struct {
	ID          string      `json:"id"`
	ServiceType ServiceType `json:"serviceType" validate:"required,oneof=boarding grooming"`

	CatName   string `json:"catName" validate:"required"`
	OwnerName string `json:"ownerName" validate:"required"`

	StartDate *Date `json:"startDate" validate:"required"`
	EndDate   *Date `json:"endDate" validate:"required_if=ServiceType boarding"`

	Notes         string   `json:"notes"`
	TotalFees     *float64 `json:"totalFees" validate:"omitempty,gte=0"`
	ContactNumber string   `json:"contactNumber" validate:"omitempty,max=32"`
}

// Normalize recorta textos y descarta endDate en grooming.
func (f Form) Normalize() Form {
	f.ID = strings.TrimSpace(f.ID)
	f.ServiceType = ServiceType(strings.ToLower(strings.TrimSpace(string(f.ServiceType))))
	f.CatName = strings.TrimSpace(f.CatName)
	f.OwnerName = strings.TrimSpace(f.OwnerName)
	f.Notes = strings.TrimSpace(f.Notes)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	if f.ServiceType == ServiceGrooming {
		f.EndDate = nil
	}
	return f
}

// Validate devuelve *ValidationError o nil. Espera un Form ya normalizado.
func (f Form) Validate() error {
	fields := map[string]string{}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}

	// Una fecha cero cuenta como ausente: el tag required solo mira el puntero.
	if f.StartDate != nil && f.StartDate.IsZero() {
		fields["startDate"] = "required"
	}
	if f.ServiceType == ServiceBoarding && f.EndDate != nil && f.EndDate.IsZero() {
		fields["endDate"] = "required_if"
	}

	if f.StartDate != nil && f.EndDate != nil && !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(*f.StartDate) {
		fields["endDate"] = "after_start"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Booking arma la entidad a partir del form validado.
func (f Form) Booking(id string) Booking {
	b := Booking{
		ID:            id,
		ServiceType:   f.ServiceType,
		CatName:       f.CatName,
		OwnerName:     f.OwnerName,
		Notes:         f.Notes,
		TotalFees:     f.TotalFees,
		ContactNumber: f.ContactNumber,
	}
	if f.StartDate != nil {
		b.StartDate = *f.StartDate
	}
	if f.ServiceType == ServiceBoarding && f.EndDate != nil {
		end := *f.EndDate
		b.EndDate = &end
	}
	return b
}

// FormFromBooking precarga el formulario en modo edición.
func FormFromBooking(b Booking) Form {
	f := Form{
		ID:            b.ID,
		ServiceType:   b.ServiceType,
		CatName:       b.CatName,
		OwnerName:     b.OwnerName,
		Notes:         b.Notes,
		TotalFees:     b.TotalFees,
		ContactNumber: b.ContactNumber,
	}
	if !b.StartDate.IsZero() {
		start := b.StartDate
		f.StartDate = &start
	}
	if b.EndDate != nil {
		end := *b.EndDate
		f.EndDate = &end
	}
	return f
}
