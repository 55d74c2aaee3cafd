package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ruman-Islam/doctors-portal-server/auth"
	"github.com/Ruman-Islam/doctors-portal-server/handlers"
	"github.com/Ruman-Islam/doctors-portal-server/models"
	"github.com/Ruman-Islam/doctors-portal-server/notify"
	"github.com/Ruman-Islam/doctors-portal-server/routes"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

const testSecret = "test-secret"

type fakeTreatments struct {
	items []models.Treatment
}

func (f *fakeTreatments) List(_ context.Context, filter store.TreatmentFilter) ([]models.Treatment, error) {
	var out []models.Treatment
	for _, t := range f.items {
		if filter.Name != "" && t.Name != filter.Name {
			continue
		}
		if filter.Date != "" && t.Date != filter.Date {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTreatments) ByDate(ctx context.Context, date string) ([]models.Treatment, error) {
	return f.List(ctx, store.TreatmentFilter{Date: date})
}

func (f *fakeTreatments) DistinctNames(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range f.items {
		if _, ok := seen[t.Name]; !ok {
			seen[t.Name] = struct{}{}
			names = append(names, t.Name)
		}
	}
	return names, nil
}

type fakeBookings struct {
	items []models.Booking
}

func (f *fakeBookings) Insert(_ context.Context, b *models.Booking) (string, error) {
	for _, existing := range f.items {
		if existing.Treatment == b.Treatment && existing.Date == b.Date &&
			existing.Patient == b.Patient && existing.Slot == b.Slot {
			return "", store.ErrDuplicateBooking
		}
	}
	b.ID = primitive.NewObjectID()
	f.items = append(f.items, *b)
	return b.ID.Hex(), nil
}

func (f *fakeBookings) Find(_ context.Context, treatment, date, patient, slot string) (*models.Booking, error) {
	for i := range f.items {
		b := f.items[i]
		if b.Treatment == treatment && b.Date == date && b.Patient == patient && b.Slot == slot {
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBookings) ByID(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			b := f.items[i]
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBookings) ByDate(_ context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.items {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) ByEmail(_ context.Context, email string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.items {
		if b.PatientEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) MarkPaid(_ context.Context, id, transactionID string) (*store.UpsertResult, error) {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items[i].Paid = true
			f.items[i].TransactionID = transactionID
			return &store.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeUsers struct {
	items map[string]models.User
}

func (f *fakeUsers) Upsert(_ context.Context, email string, user models.User) (*store.UpsertResult, error) {
	if existing, ok := f.items[email]; ok {
		existing.Name = user.Name
		f.items[email] = existing
		return &store.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	user.Email = email
	user.ID = primitive.NewObjectID()
	f.items[email] = user
	return &store.UpsertResult{UpsertedID: user.ID.Hex()}, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.items[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) All(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.items {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) SetRole(_ context.Context, email, role string) (*store.UpsertResult, error) {
	u, ok := f.items[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Role = role
	f.items[email] = u
	return &store.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeDoctors struct {
	items []models.Doctor
}

func (f *fakeDoctors) All(_ context.Context) ([]models.Doctor, error) {
	return f.items, nil
}

func (f *fakeDoctors) Insert(_ context.Context, d *models.Doctor) (string, error) {
	d.ID = primitive.NewObjectID()
	f.items = append(f.items, *d)
	return d.ID.Hex(), nil
}

func (f *fakeDoctors) DeleteByEmail(_ context.Context, email string) (int64, error) {
	for i, d := range f.items {
		if d.Email == email {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakePayments struct {
	items []models.Payment
}

func (f *fakePayments) Insert(_ context.Context, p *models.Payment) (string, error) {
	p.ID = primitive.NewObjectID()
	f.items = append(f.items, *p)
	return p.ID.Hex(), nil
}

type fakeContacts struct {
	items []models.Contact
}

func (f *fakeContacts) Insert(_ context.Context, m *models.Contact) (string, error) {
	m.ID = primitive.NewObjectID()
	f.items = append(f.items, *m)
	return m.ID.Hex(), nil
}

type fakeIntentCreator struct {
	clientSecret string
	lastAmount   int64
}

func (f *fakeIntentCreator) CreateIntent(_ context.Context, amount int64) (string, error) {
	f.lastAmount = amount
	return f.clientSecret, nil
}

type testEnv struct {
	router     *gin.Engine
	sender     *notify.MockEmailSender
	mailer     *notify.Dispatcher
	treatments *fakeTreatments
	bookings   *fakeBookings
	users      *fakeUsers
	doctors    *fakeDoctors
	payments   *fakePayments
	contacts   *fakeContacts
	intents    *fakeIntentCreator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		sender:     &notify.MockEmailSender{},
		treatments: &fakeTreatments{},
		bookings:   &fakeBookings{},
		users:      &fakeUsers{items: make(map[string]models.User)},
		doctors:    &fakeDoctors{},
		payments:   &fakePayments{},
		contacts:   &fakeContacts{},
		intents:    &fakeIntentCreator{clientSecret: "cs_test_secret"},
	}
	env.mailer = notify.NewDispatcher(env.sender, zerolog.Nop())
	t.Cleanup(env.mailer.Close)

	h := handlers.New(store.Stores{
		Treatments: env.treatments,
		Bookings:   env.bookings,
		Users:      env.users,
		Doctors:    env.doctors,
		Payments:   env.payments,
		Contacts:   env.contacts,
	}, env.mailer, env.intents, testSecret, zerolog.Nop())

	env.router = gin.New()
	routes.Register(env.router, h)
	return env
}

// do performs a request against the test router. An empty token leaves the
// Authorization header unset.
func (env *testEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.Sign(email, testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
	return body
}
