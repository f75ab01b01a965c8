package booking

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/logger"
	"github.com/fareline/fareline/pkg/uuid"
)

type memHistory struct {
	byUser map[uuid.UUID][]models.Booking
}

func newMemHistory() *memHistory {
	return &memHistory{byUser: make(map[uuid.UUID][]models.Booking)}
}

func (m *memHistory) Append(ctx context.Context, b *models.Booking) error {
	m.byUser[b.UserID] = append(m.byUser[b.UserID], *b)
	return nil
}

func (m *memHistory) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	list := append([]models.Booking(nil), m.byUser[userID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

type memEvents struct {
	appended []string
}

func (m *memEvents) Append(ctx context.Context, bookingID, status string) error {
	m.appended = append(m.appended, bookingID+":"+status)
	return nil
}

type staticResolver struct {
	quote *models.Quote
}

func (r *staticResolver) Lookup(ctx context.Context, userID uuid.UUID, quoteID string) (*models.Quote, error) {
	if r.quote != nil && r.quote.ID == quoteID {
		return r.quote, nil
	}
	return nil, types.ErrNotFound
}

type capturePublisher struct {
	published []*models.Booking
	fail      bool
}

func (p *capturePublisher) PublishConfirmed(ctx context.Context, b *models.Booking) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, b)
	return nil
}

// noTx runs the function without a database transaction.
type noTx struct{}

func (noTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func testLogger() logger.Logger {
	return logger.InitLogger("test", logger.LevelError)
}

func validReq() models.BookingRequest {
	return models.BookingRequest{
		RideID:      "1",
		Provider:    "Uber",
		Origin:      "Cyber City, Gurugram",
		Destination: "Connaught Place, Delhi",
	}
}

func newTestService(history HistoryRepo, resolver QuoteResolver, stream EventPublisher) *Service {
	return NewService(history, &memEvents{}, resolver, stream, noTx{}, testLogger())
}

func TestConfirmProducesConfirmedBooking(t *testing.T) {
	history := newMemHistory()
	resolver := &staticResolver{quote: &models.Quote{ID: "1", Provider: "Uber", Type: "UberX", Price: 250, Currency: "INR"}}
	svc := newTestService(history, resolver, nil)

	user := uuid.New()
	before := time.Now()

	b, err := svc.Confirm(context.Background(), user, validReq())
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if b.Status != types.BookingConfirmed {
		t.Errorf("status: got %q", b.Status)
	}
	if b.BookingID == "" || b.BookingID[:5] != "BOOK-" {
		t.Errorf("booking id: got %q", b.BookingID)
	}
	if !b.EstimatedPickup.After(before) {
		t.Errorf("pickup ETA %v must be strictly in the future", b.EstimatedPickup)
	}
	if b.VehicleType != "UberX" || b.Price != 250 || b.Currency != "INR" {
		t.Errorf("quote enrichment missing: %+v", b)
	}
	if b.DriverName == "" || b.VehicleDetails == "" {
		t.Errorf("driver/vehicle assignment missing: %+v", b)
	}
}

func TestConfirmRejectsMissingFields(t *testing.T) {
	svc := newTestService(newMemHistory(), nil, nil)

	cases := []func(*models.BookingRequest){
		func(r *models.BookingRequest) { r.RideID = "" },
		func(r *models.BookingRequest) { r.Provider = "" },
		func(r *models.BookingRequest) { r.Origin = "" },
		func(r *models.BookingRequest) { r.Destination = " " },
	}
	for i, mutate := range cases {
		req := validReq()
		mutate(&req)
		if _, err := svc.Confirm(context.Background(), uuid.New(), req); !errors.Is(err, types.ErrInvalidRequest) {
			t.Errorf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
}

func TestConfirmTwiceCreatesTwoBookings(t *testing.T) {
	history := newMemHistory()
	svc := newTestService(history, nil, nil)

	user := uuid.New()
	a, err := svc.Confirm(context.Background(), user, validReq())
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Confirm(context.Background(), user, validReq())
	if err != nil {
		t.Fatal(err)
	}

	if a.BookingID == b.BookingID {
		t.Fatalf("repeated confirm must produce distinct bookings, both got %q", a.BookingID)
	}

	list, err := svc.History(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bookings in history, got %d", len(list))
	}
}

func TestConfirmSurvivesExpiredQuoteCache(t *testing.T) {
	svc := newTestService(newMemHistory(), &staticResolver{}, nil)

	b, err := svc.Confirm(context.Background(), uuid.New(), validReq())
	if err != nil {
		t.Fatalf("confirm with cache miss: %v", err)
	}
	if b.VehicleType != "" {
		t.Errorf("no enrichment expected on cache miss, got %q", b.VehicleType)
	}
}

func TestConfirmSurvivesPublisherFailure(t *testing.T) {
	pub := &capturePublisher{fail: true}
	svc := newTestService(newMemHistory(), nil, pub)

	if _, err := svc.Confirm(context.Background(), uuid.New(), validReq()); err != nil {
		t.Fatalf("publisher failure must not fail the booking: %v", err)
	}
}

func TestConfirmPublishesEvent(t *testing.T) {
	pub := &capturePublisher{}
	svc := newTestService(newMemHistory(), nil, pub)

	b, err := svc.Confirm(context.Background(), uuid.New(), validReq())
	if err != nil {
		t.Fatal(err)
	}
	if len(pub.published) != 1 || pub.published[0].BookingID != b.BookingID {
		t.Fatalf("expected one published event for %s", b.BookingID)
	}
}

func TestHistoryIsPerUser(t *testing.T) {
	history := newMemHistory()
	svc := newTestService(history, nil, nil)

	u1 := uuid.New()
	u2 := uuid.New()

	if _, err := svc.Confirm(context.Background(), u1, validReq()); err != nil {
		t.Fatal(err)
	}

	l1, err := svc.History(context.Background(), u1)
	if err != nil {
		t.Fatal(err)
	}
	if len(l1) != 1 {
		t.Fatalf("owner sees %d bookings", len(l1))
	}

	l2, err := svc.History(context.Background(), u2)
	if err != nil {
		t.Fatal(err)
	}
	if len(l2) != 0 {
		t.Fatalf("another user must see no bookings, got %d", len(l2))
	}
}

func TestHistoryMostRecentFirst(t *testing.T) {
	history := newMemHistory()
	svc := newTestService(history, nil, nil)

	// control the clock so ordering is deterministic
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	user := uuid.New()
	for range 3 {
		if _, err := svc.Confirm(context.Background(), user, validReq()); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.History(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("history not in reverse-chronological order: %v", list)
		}
	}
}
