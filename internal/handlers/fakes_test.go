package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/api/internal/config"
	"adminpanel/api/internal/models"
	"adminpanel/api/internal/repository"
	"adminpanel/api/internal/service"
)

// In-memory stand-ins for the Mongo repositories. They mirror the
// repositories' contracts: not-found sentinels per collection, active-only
// conflict checks, name-ascending listings.

type fakeUserStore struct {
	users map[string]models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) Save(_ context.Context, user models.User) (models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.Email] = user
	return user, nil
}

type fakeMailer struct {
	err      error
	lastCode string
}

func (f *fakeMailer) SendOTP(_ context.Context, _, code string) error {
	if f.err != nil {
		return f.err
	}
	f.lastCode = code
	return nil
}

type fakeCountryStore struct {
	countries map[primitive.ObjectID]models.Country
}

func (f *fakeCountryStore) ListActive(context.Context) ([]models.Country, error) {
	out := make([]models.Country, 0, len(f.countries))
	for _, country := range f.countries {
		if country.IsActive {
			out = append(out, country)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCountryStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Country, error) {
	country, ok := f.countries[id]
	if !ok {
		return models.Country{}, repository.ErrCountryNotFound
	}
	return country, nil
}

func (f *fakeCountryStore) FindConflict(_ context.Context, name, code string, exclude primitive.ObjectID) (bool, error) {
	for _, country := range f.countries {
		if country.IsActive && country.ID != exclude && (country.Name == name || country.Code == code) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCountryStore) Insert(_ context.Context, country models.Country) (models.Country, error) {
	country.ID = primitive.NewObjectID()
	country.IsActive = true
	country.CreatedAt = time.Now().UTC()
	country.UpdatedAt = country.CreatedAt
	f.countries[country.ID] = country
	return country, nil
}

func (f *fakeCountryStore) Update(_ context.Context, country models.Country) (models.Country, error) {
	if _, ok := f.countries[country.ID]; !ok {
		return models.Country{}, repository.ErrCountryNotFound
	}
	country.UpdatedAt = time.Now().UTC()
	f.countries[country.ID] = country
	return country, nil
}

func (f *fakeCountryStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	country, ok := f.countries[id]
	if !ok {
		return repository.ErrCountryNotFound
	}
	country.IsActive = false
	f.countries[id] = country
	return nil
}

type fakeStateStore struct {
	states map[primitive.ObjectID]models.State
}

func (f *fakeStateStore) ListActive(context.Context) ([]models.State, error) {
	return f.filter(func(models.State) bool { return true }), nil
}

func (f *fakeStateStore) ListActiveByCountry(_ context.Context, countryID primitive.ObjectID) ([]models.State, error) {
	return f.filter(func(s models.State) bool { return s.CountryID == countryID }), nil
}

func (f *fakeStateStore) filter(keep func(models.State) bool) []models.State {
	out := make([]models.State, 0, len(f.states))
	for _, state := range f.states {
		if state.IsActive && keep(state) {
			out = append(out, state)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeStateStore) GetByID(_ context.Context, id primitive.ObjectID) (models.State, error) {
	state, ok := f.states[id]
	if !ok {
		return models.State{}, repository.ErrStateNotFound
	}
	return state, nil
}

func (f *fakeStateStore) FindConflict(_ context.Context, name string, countryID, exclude primitive.ObjectID) (bool, error) {
	for _, state := range f.states {
		if state.IsActive && state.ID != exclude && state.Name == name && state.CountryID == countryID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStateStore) Insert(_ context.Context, state models.State) (models.State, error) {
	state.ID = primitive.NewObjectID()
	state.IsActive = true
	state.CreatedAt = time.Now().UTC()
	state.UpdatedAt = state.CreatedAt
	f.states[state.ID] = state
	return state, nil
}

func (f *fakeStateStore) Update(_ context.Context, state models.State) (models.State, error) {
	if _, ok := f.states[state.ID]; !ok {
		return models.State{}, repository.ErrStateNotFound
	}
	state.UpdatedAt = time.Now().UTC()
	f.states[state.ID] = state
	return state, nil
}

func (f *fakeStateStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	state, ok := f.states[id]
	if !ok {
		return repository.ErrStateNotFound
	}
	state.IsActive = false
	f.states[id] = state
	return nil
}

type fakeCityStore struct {
	cities map[primitive.ObjectID]models.City
}

func (f *fakeCityStore) ListActive(context.Context) ([]models.City, error) {
	return f.filter(func(models.City) bool { return true }), nil
}

func (f *fakeCityStore) ListActiveByState(_ context.Context, stateID primitive.ObjectID) ([]models.City, error) {
	return f.filter(func(c models.City) bool { return c.StateID == stateID }), nil
}

func (f *fakeCityStore) ListActiveByCountry(_ context.Context, countryID primitive.ObjectID) ([]models.City, error) {
	return f.filter(func(c models.City) bool { return c.CountryID == countryID }), nil
}

func (f *fakeCityStore) filter(keep func(models.City) bool) []models.City {
	out := make([]models.City, 0, len(f.cities))
	for _, city := range f.cities {
		if city.IsActive && keep(city) {
			out = append(out, city)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeCityStore) GetByID(_ context.Context, id primitive.ObjectID) (models.City, error) {
	city, ok := f.cities[id]
	if !ok {
		return models.City{}, repository.ErrCityNotFound
	}
	return city, nil
}

func (f *fakeCityStore) FindConflict(_ context.Context, name string, stateID, exclude primitive.ObjectID) (bool, error) {
	for _, city := range f.cities {
		if city.IsActive && city.ID != exclude && city.Name == name && city.StateID == stateID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCityStore) Insert(_ context.Context, city models.City) (models.City, error) {
	city.ID = primitive.NewObjectID()
	city.IsActive = true
	city.CreatedAt = time.Now().UTC()
	city.UpdatedAt = city.CreatedAt
	f.cities[city.ID] = city
	return city, nil
}

func (f *fakeCityStore) Update(_ context.Context, city models.City) (models.City, error) {
	if _, ok := f.cities[city.ID]; !ok {
		return models.City{}, repository.ErrCityNotFound
	}
	city.UpdatedAt = time.Now().UTC()
	f.cities[city.ID] = city
	return city, nil
}

func (f *fakeCityStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	city, ok := f.cities[id]
	if !ok {
		return repository.ErrCityNotFound
	}
	city.IsActive = false
	f.cities[id] = city
	return nil
}

type fakeLocationStore struct {
	locations map[primitive.ObjectID]models.Location
}

func (f *fakeLocationStore) ListActive(context.Context) ([]models.Location, error) {
	out := make([]models.Location, 0, len(f.locations))
	for _, location := range f.locations {
		if location.IsActive {
			out = append(out, location)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeLocationStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Location, error) {
	location, ok := f.locations[id]
	if !ok {
		return models.Location{}, repository.ErrLocationNotFound
	}
	return location, nil
}

func (f *fakeLocationStore) SlugExists(_ context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	for _, location := range f.locations {
		if location.IsActive && location.ID != exclude && location.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLocationStore) Insert(_ context.Context, location models.Location) (models.Location, error) {
	location.ID = primitive.NewObjectID()
	location.IsActive = true
	location.CreatedAt = time.Now().UTC()
	location.UpdatedAt = location.CreatedAt
	f.locations[location.ID] = location
	return location, nil
}

func (f *fakeLocationStore) Update(_ context.Context, location models.Location) (models.Location, error) {
	if _, ok := f.locations[location.ID]; !ok {
		return models.Location{}, repository.ErrLocationNotFound
	}
	location.UpdatedAt = time.Now().UTC()
	f.locations[location.ID] = location
	return location, nil
}

func (f *fakeLocationStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	location, ok := f.locations[id]
	if !ok {
		return repository.ErrLocationNotFound
	}
	location.IsActive = false
	f.locations[id] = location
	return nil
}

type fakeProductStore struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeProductStore) ListActive(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, product := range f.products {
		if product.IsActive {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return models.Product{}, repository.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductStore) FindConflict(_ context.Context, name, slug string, exclude primitive.ObjectID) (bool, error) {
	for _, product := range f.products {
		if product.IsActive && product.ID != exclude && (product.Name == name || product.Slug == slug) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductStore) Insert(_ context.Context, product models.Product) (models.Product, error) {
	product.ID = primitive.NewObjectID()
	product.IsActive = true
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductStore) Update(_ context.Context, product models.Product) (models.Product, error) {
	if _, ok := f.products[product.ID]; !ok {
		return models.Product{}, repository.ErrProductNotFound
	}
	product.UpdatedAt = time.Now().UTC()
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	product, ok := f.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.IsActive = false
	f.products[id] = product
	return nil
}

type fakeSEOStore struct {
	docs map[primitive.ObjectID]models.SEODocument
}

func cloneDoc(doc models.SEODocument) models.SEODocument {
	out := make(models.SEODocument, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (f *fakeSEOStore) List(context.Context) ([]models.SEODocument, error) {
	out := make([]models.SEODocument, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, cloneDoc(doc))
	}
	return out, nil
}

func (f *fakeSEOStore) GetByID(_ context.Context, id primitive.ObjectID) (models.SEODocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrSEONotFound
	}
	return cloneDoc(doc), nil
}

func (f *fakeSEOStore) SlugExists(_ context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	for id, doc := range f.docs {
		if id != exclude && doc["slug"] == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSEOStore) Insert(_ context.Context, doc models.SEODocument) (models.SEODocument, error) {
	doc = cloneDoc(doc)
	id := primitive.NewObjectID()
	doc["_id"] = id
	doc["createdAt"] = time.Now().UTC()
	doc["updatedAt"] = doc["createdAt"]
	f.docs[id] = doc
	return cloneDoc(doc), nil
}

func (f *fakeSEOStore) Update(_ context.Context, id primitive.ObjectID, fields models.SEODocument) (models.SEODocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrSEONotFound
	}
	for k, v := range fields {
		switch k {
		case "_id", "id", "createdAt":
			continue
		}
		doc[k] = v
	}
	doc["updatedAt"] = time.Now().UTC()
	f.docs[id] = doc
	return cloneDoc(doc), nil
}

func (f *fakeSEOStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.docs[id]; !ok {
		return repository.ErrSEONotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeCustomFieldStore struct {
	fields []models.SEOCustomField
}

func (f *fakeCustomFieldStore) List(context.Context) ([]models.SEOCustomField, error) {
	out := make([]models.SEOCustomField, len(f.fields))
	copy(out, f.fields)
	return out, nil
}

func (f *fakeCustomFieldStore) NameExists(_ context.Context, name string) (bool, error) {
	for _, field := range f.fields {
		if field.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomFieldStore) Insert(_ context.Context, field models.SEOCustomField) (models.SEOCustomField, error) {
	field.ID = primitive.NewObjectID()
	field.CreatedAt = time.Now().UTC()
	field.UpdatedAt = field.CreatedAt
	f.fields = append(f.fields, field)
	return field, nil
}

func (f *fakeCustomFieldStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, field := range f.fields {
		if field.ID == id {
			f.fields = append(f.fields[:i], f.fields[i+1:]...)
			return nil
		}
	}
	return repository.ErrCustomFieldNotFound
}

type fakeInquiryStore struct {
	inquiries map[primitive.ObjectID]models.Inquiry
	seq       int
}

// nextTime hands out strictly increasing timestamps so newest-first
// ordering is deterministic regardless of wall-clock resolution.
func (f *fakeInquiryStore) nextTime() time.Time {
	f.seq++
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
}

func (f *fakeInquiryStore) ListNewestFirst(context.Context) ([]models.Inquiry, error) {
	out := make([]models.Inquiry, 0, len(f.inquiries))
	for _, inquiry := range f.inquiries {
		out = append(out, inquiry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeInquiryStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Inquiry, error) {
	inquiry, ok := f.inquiries[id]
	if !ok {
		return models.Inquiry{}, repository.ErrInquiryNotFound
	}
	return inquiry, nil
}

func (f *fakeInquiryStore) Insert(_ context.Context, inquiry models.Inquiry) (models.Inquiry, error) {
	inquiry.ID = primitive.NewObjectID()
	inquiry.CreatedAt = f.nextTime()
	inquiry.UpdatedAt = inquiry.CreatedAt
	f.inquiries[inquiry.ID] = inquiry
	return inquiry, nil
}

func (f *fakeInquiryStore) UpdateFields(_ context.Context, id primitive.ObjectID, fields map[string]any) (models.Inquiry, error) {
	inquiry, ok := f.inquiries[id]
	if !ok {
		return models.Inquiry{}, repository.ErrInquiryNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			inquiry.Name = v.(string)
		case "email":
			inquiry.Email = v.(string)
		case "phone":
			inquiry.Phone = v.(string)
		case "message":
			inquiry.Message = v.(string)
		case "step":
			inquiry.Step = v.(int)
		}
	}
	inquiry.UpdatedAt = f.nextTime()
	f.inquiries[id] = inquiry
	return inquiry, nil
}

func (f *fakeInquiryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.inquiries[id]; !ok {
		return repository.ErrInquiryNotFound
	}
	delete(f.inquiries, id)
	return nil
}

type testBackend struct {
	users        *fakeUserStore
	mailer       *fakeMailer
	countries    *fakeCountryStore
	states       *fakeStateStore
	cities       *fakeCityStore
	locations    *fakeLocationStore
	products     *fakeProductStore
	seos         *fakeSEOStore
	customFields *fakeCustomFieldStore
	inquiries    *fakeInquiryStore
}

func newTestRouter(t *testing.T) (*gin.Engine, *testBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &testBackend{
		users:        &fakeUserStore{users: make(map[string]models.User)},
		mailer:       &fakeMailer{},
		countries:    &fakeCountryStore{countries: make(map[primitive.ObjectID]models.Country)},
		states:       &fakeStateStore{states: make(map[primitive.ObjectID]models.State)},
		cities:       &fakeCityStore{cities: make(map[primitive.ObjectID]models.City)},
		locations:    &fakeLocationStore{locations: make(map[primitive.ObjectID]models.Location)},
		products:     &fakeProductStore{products: make(map[primitive.ObjectID]models.Product)},
		seos:         &fakeSEOStore{docs: make(map[primitive.ObjectID]models.SEODocument)},
		customFields: &fakeCustomFieldStore{},
		inquiries:    &fakeInquiryStore{inquiries: make(map[primitive.ObjectID]models.Inquiry)},
	}

	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			AllowedEmails: []string{"admin@example.com"},
			OTPTTL:        5 * time.Minute,
			SessionTTL:    24 * time.Hour,
		},
	}

	h := HandlerSet{
		log:          zerolog.Nop(),
		cfg:          cfg,
		auth:         service.NewAuthService(backend.users, backend.mailer, cfg.Auth, zerolog.Nop()),
		countries:    backend.countries,
		states:       backend.states,
		cities:       backend.cities,
		locations:    backend.locations,
		products:     backend.products,
		seos:         backend.seos,
		customFields: backend.customFields,
		inquiries:    backend.inquiries,
	}

	router := gin.New()
	h.Register(router.Group("/api"))
	return router, backend
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
