package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/logger"
	"github.com/fareline/fareline/pkg/uuid"
)

type fakeAuthService struct {
	registerFn func(ctx context.Context, req *models.UserCreateRequest) (*models.User, error)
	loginFn    func(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) Refresh(ctx context.Context, token string) (*models.TokenPair, error) {
	return nil, types.ErrInvalidCredentials
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	return nil, types.ErrInvalidCredentials
}

type fakeQuoteService struct {
	quotes []models.Quote
	err    error
}

func (f *fakeQuoteService) Search(ctx context.Context, userID uuid.UUID, origin, destination string) ([]models.Quote, error) {
	return f.quotes, f.err
}

type fakeBookingService struct {
	booking *models.Booking
	history []models.Booking
	err     error
}

func (f *fakeBookingService) Confirm(ctx context.Context, userID uuid.UUID, req models.BookingRequest) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) History(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

func testLogger() logger.Logger {
	return logger.InitLogger("test", logger.LevelError)
}

func authedRequest(method, target string, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	user := &models.User{ID: uuid.New(), Name: "Rider", Email: "rider@example.com"}
	return r.WithContext(models.WithUser(r.Context(), user))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestSignupValidation(t *testing.T) {
	h := NewAuth(&fakeAuthService{}, testLogger())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", `{}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"A","email":"not-an-email","password":"longenough"}`, http.StatusUnprocessableEntity},
		{"short password", `{"name":"A","email":"a@b.com","password":"short"}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			h.Signup(rec, r)

			if rec.Code != tt.want {
				t.Fatalf("got status %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSignupSuccess(t *testing.T) {
	svc := &fakeAuthService{
		registerFn: func(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
			return &models.User{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
		},
	}
	h := NewAuth(svc, testLogger())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"name":"Rider","email":"rider@example.com","password":"s3cret-pass"}`))
	h.Signup(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if _, ok := body["user"]; !ok {
		t.Fatal("response missing user")
	}
}

func TestSignupDuplicate(t *testing.T) {
	svc := &fakeAuthService{
		registerFn: func(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
			return nil, types.ErrDuplicateUser
		},
	}
	h := NewAuth(svc, testLogger())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"name":"Rider","email":"rider@example.com","password":"s3cret-pass"}`))
	h.Signup(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
			return nil, nil, types.ErrInvalidCredentials
		},
	}
	h := NewAuth(svc, testLogger())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"rider@example.com","password":"wrong"}`))
	h.Login(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Rider", Email: "rider@example.com"}
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
			return user, &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil
		},
	}
	h := NewAuth(svc, testLogger())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"rider@example.com","password":"s3cret-pass"}`))
	h.Login(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["token"] != "acc" || body["refresh_token"] != "ref" {
		t.Fatalf("unexpected token fields: %v", body)
	}
	if _, ok := body["user"]; !ok {
		t.Fatal("response missing user")
	}
}

func TestSearchRequiresEndpoints(t *testing.T) {
	h := NewRide(&fakeQuoteService{}, &fakeBookingService{}, testLogger())

	tests := []struct {
		name   string
		target string
	}{
		{"missing destination", "/rides/search?origin=Airport"},
		{"missing origin", "/rides/search?destination=Downtown"},
		{"whitespace origin", "/rides/search?origin=%20%20&destination=Downtown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Search(rec, authedRequest(http.MethodGet, tt.target, ""))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchReturnsQuotes(t *testing.T) {
	quotes := []models.Quote{
		{ID: "1", Provider: "Uber", Type: "UberX", Price: 262, Currency: "INR", EstimatedTime: 14, DistanceKm: 5.2, AvailableSeats: 4},
		{ID: "5", Provider: "Rapido", Type: "Bike", Price: 114, Currency: "INR", EstimatedTime: 11, DistanceKm: 5.2, AvailableSeats: 1},
	}
	h := NewRide(&fakeQuoteService{quotes: quotes}, &fakeBookingService{}, testLogger())

	rec := httptest.NewRecorder()
	h.Search(rec, authedRequest(http.MethodGet, "/rides/search?origin=Airport&destination=Downtown", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got []models.Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("expected a plain quote array: %v: %s", err, rec.Body.String())
	}
	if len(got) != 2 {
		t.Fatalf("got %d quotes, want 2", len(got))
	}
	if got[0].Provider != "Uber" || got[1].Provider != "Rapido" {
		t.Fatalf("unexpected providers: %+v", got)
	}
}

func TestSearchAllProvidersDown(t *testing.T) {
	h := NewRide(&fakeQuoteService{err: types.ErrProvidersUnavailable}, &fakeBookingService{}, testLogger())

	rec := httptest.NewRecorder()
	h.Search(rec, authedRequest(http.MethodGet, "/rides/search?origin=Airport&destination=Downtown", ""))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}
}

func TestBookSuccess(t *testing.T) {
	booking := &models.Booking{
		BookingID:       "BOOK-1756700000000",
		RideID:          "1",
		Provider:        "Uber",
		Origin:          "Airport",
		Destination:     "Downtown",
		Status:          types.BookingConfirmed,
		DriverName:      "John Doe",
		EstimatedPickup: time.Now().Add(5 * time.Minute),
		CreatedAt:       time.Now(),
	}
	h := NewRide(&fakeQuoteService{}, &fakeBookingService{booking: booking}, testLogger())

	rec := httptest.NewRecorder()
	body := `{"rideId":"1","provider":"Uber","origin":"Airport","destination":"Downtown"}`
	h.Book(rec, authedRequest(http.MethodPost, "/rides/book", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	b, ok := resp["booking"].(map[string]any)
	if !ok {
		t.Fatalf("response missing booking: %v", resp)
	}
	if b["bookingId"] != "BOOK-1756700000000" {
		t.Fatalf("unexpected booking id %v", b["bookingId"])
	}
}

func TestBookMissingFields(t *testing.T) {
	h := NewRide(&fakeQuoteService{}, &fakeBookingService{}, testLogger())

	rec := httptest.NewRecorder()
	h.Book(rec, authedRequest(http.MethodPost, "/rides/book", `{"rideId":"1"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestHistoryReturnsBookings(t *testing.T) {
	history := []models.Booking{
		{BookingID: "BOOK-2", Provider: "Ola", Status: types.BookingConfirmed},
		{BookingID: "BOOK-1", Provider: "Uber", Status: types.BookingConfirmed},
	}
	h := NewRide(&fakeQuoteService{}, &fakeBookingService{history: history}, testLogger())

	rec := httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/rides/history", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var got []models.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("expected a plain booking array: %v: %s", err, rec.Body.String())
	}
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2", len(got))
	}
	if got[0].BookingID != "BOOK-2" {
		t.Fatalf("expected newest booking first, got %s", got[0].BookingID)
	}
}
