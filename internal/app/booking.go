package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"park_palace/internal/adapters/observability"
	"park_palace/internal/domain"
	"park_palace/internal/render"
)

const dateLayout = "2006-01-02"

// MaxGuests bounds a single booking.
const MaxGuests = 99

// Notification copy.
const (
	TitleConfirmed     = "Booking Confirmed!"
	TitleFailed        = "Booking Failed!"
	MsgNetworkError    = "Network error occurred"
	MsgBookingFallback = "Failed to create booking"
)

var ErrInvalidDate = errors.New("invalid date")

// BookingForm is the booking form as submitted. It is the only read path for
// form values; the backend request is built from it.
type BookingForm struct {
	RoomID        string `form:"roomId" validate:"required,number"`
	RoomName      string `form:"roomName"`
	RoomPrice     string `form:"roomPrice"`
	FirstName     string `form:"firstName" validate:"required"`
	LastName      string `form:"lastName" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Phone         string `form:"phone" validate:"required"`
	CheckIn       string `form:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut      string `form:"checkOut" validate:"required,datetime=2006-01-02"`
	Guests        string `form:"guests" validate:"required,number"`
	PaymentMethod string `form:"paymentMethod"`
}

func FormFromValues(v url.Values) BookingForm {
	return BookingForm{
		RoomID:        v.Get("roomId"),
		RoomName:      v.Get("roomName"),
		RoomPrice:     v.Get("roomPrice"),
		FirstName:     v.Get("firstName"),
		LastName:      v.Get("lastName"),
		Email:         v.Get("email"),
		Phone:         v.Get("phone"),
		CheckIn:       v.Get("checkIn"),
		CheckOut:      v.Get("checkOut"),
		Guests:        v.Get("guests"),
		PaymentMethod: v.Get("paymentMethod"),
	}
}

// Values returns the user-entered fields keyed by input name, for re-display.
func (f BookingForm) Values() map[string]string {
	return map[string]string{
		"firstName":     f.FirstName,
		"lastName":      f.LastName,
		"email":         f.Email,
		"phone":         f.Phone,
		"checkIn":       f.CheckIn,
		"checkOut":      f.CheckOut,
		"guests":        f.Guests,
		"paymentMethod": f.PaymentMethod,
	}
}

// Room is the room carried in the form's hidden fields.
func (f BookingForm) Room() (domain.SelectedRoom, bool) {
	id, err := strconv.ParseInt(f.RoomID, 10, 64)
	if err != nil {
		return domain.SelectedRoom{}, false
	}
	return domain.SelectedRoom{ID: id, Name: f.RoomName, Price: domain.Price(f.RoomPrice)}, true
}

// request assumes a validated form.
func (f BookingForm) request() domain.BookingRequest {
	roomID, _ := strconv.ParseInt(f.RoomID, 10, 64)
	guests, _ := strconv.Atoi(f.Guests)
	return domain.BookingRequest{
		RoomID:        roomID,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		Phone:         f.Phone,
		CheckIn:       f.CheckIn,
		CheckOut:      f.CheckOut,
		Guests:        guests,
		PaymentMethod: f.PaymentMethod,
	}
}

var fieldLabels = map[string]string{
	"roomId":    "Room",
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"phone":     "Phone",
	"checkIn":   "Check-in",
	"checkOut":  "Check-out",
	"guests":    "Guests",
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	case "number":
		return label + " must be a whole number"
	case "notpast":
		return "Check-in cannot be in the past"
	case "aftercheckin":
		return "Check-out must be after check-in"
	case "minguests":
		return "At least 1 guest is required"
	case "maxguests":
		return fmt.Sprintf("At most %d guests per booking", MaxGuests)
	case "outofrange":
		return label + " is out of range"
	}
	return label + " is invalid"
}

// DateCoupling is the check-out field state after a check-in change.
type DateCoupling struct {
	MinCheckOut string
	CheckOut    string
}

// CoupleDates sets the check-out minimum to the day after checkIn and moves
// a set check-out that is not strictly after checkIn up to that minimum.
func CoupleDates(checkIn, checkOut string) (DateCoupling, error) {
	ci, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return DateCoupling{}, fmt.Errorf("%w: check-in %q", ErrInvalidDate, checkIn)
	}
	next := ci.AddDate(0, 0, 1).Format(dateLayout)
	out := DateCoupling{MinCheckOut: next, CheckOut: checkOut}
	if checkOut == "" {
		return out, nil
	}
	if co, err := time.Parse(dateLayout, checkOut); err != nil || !co.After(ci) {
		out.CheckOut = next
	}
	return out, nil
}

// SubmitOutcome is what the page shows after a submit.
type SubmitOutcome struct {
	Booked       *domain.BookingResult
	Notification *domain.Notification
	// Modal is the form to show again; nil once the booking is confirmed.
	Modal *render.BookingModal
	State UIState
}

type BookingFlow struct {
	api      domain.HotelAPI
	notifier *Notifier
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

type BookingOption func(*BookingFlow)

// WithClock replaces time.Now for the "today" date bounds.
func WithClock(now func() time.Time) BookingOption {
	return func(f *BookingFlow) { f.now = now }
}

func NewBookingFlow(api domain.HotelAPI, n *Notifier, loc *time.Location, opts ...BookingOption) *BookingFlow {
	if loc == nil {
		loc = time.Local
	}
	f := &BookingFlow{api: api, notifier: n, loc: loc, now: time.Now}
	for _, o := range opts {
		o(f)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string { return fld.Tag.Get("form") })
	v.RegisterStructValidation(f.validateStay, BookingForm{})
	f.validate = v
	return f
}

func (f *BookingFlow) today() string { return f.now().In(f.loc).Format(dateLayout) }

// validateStay covers the constraints that depend on other fields or on today.
func (f *BookingFlow) validateStay(sl validator.StructLevel) {
	form := sl.Current().Interface().(BookingForm)
	ci, ciErr := time.Parse(dateLayout, form.CheckIn)
	if ciErr == nil && form.CheckIn < f.today() {
		sl.ReportError(form.CheckIn, "checkIn", "CheckIn", "notpast", f.today())
	}
	if co, err := time.Parse(dateLayout, form.CheckOut); ciErr == nil && err == nil && !co.After(ci) {
		sl.ReportError(form.CheckOut, "checkOut", "CheckOut", "aftercheckin", form.CheckIn)
	}
	// digits-only input that overflows parses as a range error
	switch g, err := strconv.Atoi(form.Guests); {
	case err == nil && g < 1:
		sl.ReportError(form.Guests, "guests", "Guests", "minguests", "1")
	case errors.Is(err, strconv.ErrRange), err == nil && g > MaxGuests:
		sl.ReportError(form.Guests, "guests", "Guests", "maxguests", strconv.Itoa(MaxGuests))
	}
	if _, err := strconv.ParseInt(form.RoomID, 10, 64); errors.Is(err, strconv.ErrRange) {
		sl.ReportError(form.RoomID, "roomId", "RoomID", "outofrange", "")
	}
}

// Validate returns field errors keyed by input name, or nil.
func (f *BookingFlow) Validate(form BookingForm) map[string]string {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fieldMessage(fe)
		}
	}
	return out
}

// Open is the empty booking modal for room, dated from today.
func (f *BookingFlow) Open(room domain.SelectedRoom) render.BookingModal {
	today := f.today()
	return render.BookingModal{
		Visible:     true,
		Title:       "Book " + room.Name,
		Room:        room,
		MinCheckIn:  today,
		MinCheckOut: today,
	}
}

func (f *BookingFlow) reopen(room domain.SelectedRoom, form BookingForm, errs map[string]string) *render.BookingModal {
	m := f.Open(room)
	m.Values = form.Values()
	if c, err := CoupleDates(form.CheckIn, ""); err == nil {
		m.MinCheckOut = c.MinCheckOut
	}
	if errs != nil {
		m.WasValidated = true
		m.Errors = errs
	}
	return &m
}

// Submit validates form and, only when it is valid, sends exactly one booking
// request. The returned error is set only when the notification could not be
// stored; the outcome is complete either way.
func (f *BookingFlow) Submit(ctx context.Context, session string, state UIState, form BookingForm) (SubmitOutcome, error) {
	room, ok := form.Room()
	if state.CurrentRoom != nil {
		room = *state.CurrentRoom
	} else if ok {
		state.CurrentRoom = &room
	}
	out := SubmitOutcome{State: state}

	if errs := f.Validate(form); errs != nil {
		observability.ObserveBooking("invalid")
		out.Modal = f.reopen(room, form, errs)
		return out, nil
	}

	res, err := f.api.CreateBooking(ctx, form.request())
	var (
		kind  domain.NotificationKind
		title string
		lines []string
	)
	var rej *domain.RejectedError
	switch {
	case err == nil:
		observability.ObserveBooking("confirmed")
		kind, title = domain.NotifySuccess, TitleConfirmed
		lines = []string{
			fmt.Sprintf("Booking ID: %d", res.ID),
			"Room: " + room.Name,
			"Check-in: " + res.CheckIn,
		}
		out.Booked = &res
		out.State.CurrentRoom = nil
	case errors.As(err, &rej):
		observability.ObserveBooking("rejected")
		msg := rej.Message
		if msg == "" {
			msg = MsgBookingFallback
		}
		kind, title, lines = domain.NotifyFailure, TitleFailed, []string{msg}
		out.Modal = f.reopen(room, form, nil)
	default:
		observability.ObserveBooking("error")
		log.Warn().Err(err).Int64("room_id", room.ID).Msg("booking request failed")
		kind, title, lines = domain.NotifyFailure, TitleFailed, []string{MsgNetworkError}
		out.Modal = f.reopen(room, form, nil)
	}

	note, nerr := f.notifier.Notify(ctx, session, kind, title, lines...)
	out.Notification = &note
	return out, nerr
}
