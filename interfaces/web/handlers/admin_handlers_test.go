package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inmohub/application"
	"inmohub/domain/contracts"
	"inmohub/domain/listing"
	"inmohub/interfaces/web/presenters"
	"inmohub/logging"
	"inmohub/test/helpers"
	"inmohub/test/mocks"
)

type adminTestEnv struct {
	repo   *mocks.MockPropertyRepository
	images *mocks.MockImageStorage
	token  string
	server *chi.Mux
}

func newAdminTestEnv(t *testing.T) *adminTestEnv {
	t.Helper()

	repo := new(mocks.MockPropertyRepository)
	images := new(mocks.MockImageStorage)
	logger := logging.Default()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	sessions := NewSessionManager("admin", string(hash), time.Hour, logger)

	propertyPresenter := presenters.NewPropertyPresenter()
	h := NewAdminHandlers(
		application.NewAdminService(repo, images, logger),
		sessions,
		time.Hour,
		presenters.NewAdminPresenter(propertyPresenter),
		propertyPresenter,
		logger,
	)

	r := chi.NewRouter()
	r.Post("/api/admin/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireAdmin)
		r.Post("/api/admin/logout", h.Logout)
		r.Get("/api/admin/properties", h.ListProperties)
		r.Get("/api/admin/properties/{id}", h.GetProperty)
		r.Post("/api/admin/properties", h.CreateProperty)
		r.Put("/api/admin/properties/{id}", h.UpdateProperty)
		r.Delete("/api/admin/properties/{id}", h.DeleteProperty)
		r.Get("/api/admin/stats", h.Dashboard)
	})

	token, ok := sessions.Login("admin", "s3cret")
	require.True(t, ok)

	return &adminTestEnv{repo: repo, images: images, token: token, server: r}
}

func (e *adminTestEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+e.token)
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func TestAdminEndpoints_RequireSession(t *testing.T) {
	env := newAdminTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/properties", nil)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestLogin_GoodAndBadCredentials(t *testing.T) {
	env := newAdminTestEnv(t)

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username": "admin", "password": "s3cret"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")

	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username": "admin", "password": "wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProperties_IncludesDrafts(t *testing.T) {
	env := newAdminTestEnv(t)
	td := helpers.NewTestData()

	env.repo.On("List", mock.Anything, contracts.AdminSession(env.token)).
		Return([]*listing.Property{
			td.PublishedProperty("p1", "Manizales", "Palermo", 100),
			td.DraftProperty("d1"),
		}, nil)

	rec := env.do(http.MethodGet, "/api/admin/properties", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"p1"`)
	assert.Contains(t, rec.Body.String(), `"d1"`)
}

func TestCreateProperty_FromFields(t *testing.T) {
	env := newAdminTestEnv(t)

	env.repo.On("Insert", mock.Anything, mock.MatchedBy(func(p *listing.Property) bool {
		return p.Title == "Casa en Palermo" && p.Price == 450000000 && p.Status == listing.StatusPublished
	})).Return(func() *listing.Property {
		td := helpers.NewTestData()
		p := td.PublishedProperty("new-id", "Manizales", "Palermo", 450000000)
		p.Title = "Casa en Palermo"
		return p
	}(), nil)

	body := `{
		"fields": {
			"title": "Casa en Palermo",
			"description": "Amplia casa de dos plantas",
			"city": "Manizales",
			"neighborhood": "Palermo",
			"operation": "sale",
			"property_type": "house",
			"price": "450000000",
			"status": "published"
		}
	}`

	rec := env.do(http.MethodPost, "/api/admin/properties", body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var vm presenters.PropertyDetailVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	assert.Equal(t, "new-id", vm.ID)
	env.repo.AssertExpectations(t)
}

func TestCreateProperty_ValidationFailureReturns422(t *testing.T) {
	env := newAdminTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/properties", `{"fields": {"title": "only a title"}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "fields")
	env.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateProperty_UnknownFieldRejected(t *testing.T) {
	env := newAdminTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/properties", `{"fields": {"not_a_field": "x"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProperty_InlineImageUploadedBeforePersist(t *testing.T) {
	env := newAdminTestEnv(t)
	td := helpers.NewTestData()

	payload := base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes"))
	env.images.On("Upload", mock.Anything, "front.jpg", []byte("fake-jpeg-bytes")).
		Return("/media/abc.jpg", nil)
	env.repo.On("Insert", mock.Anything, mock.MatchedBy(func(p *listing.Property) bool {
		return len(p.Images) == 1 && p.Images[0].URL == "/media/abc.jpg" && p.Images[0].IsPrincipal
	})).Return(td.PublishedProperty("new-id", "Manizales", "Palermo", 100), nil)

	body := `{
		"fields": {
			"title": "Con foto",
			"description": "d",
			"city": "Manizales",
			"neighborhood": "Palermo"
		},
		"images": [
			{"filename": "front.jpg", "data": "` + payload + `", "alt_text": "front", "is_principal": true}
		]
	}`

	rec := env.do(http.MethodPost, "/api/admin/properties", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	env.repo.AssertExpectations(t)
	env.images.AssertExpectations(t)
}

func TestCreateProperty_UploadFailureSavesNothing(t *testing.T) {
	env := newAdminTestEnv(t)

	payload := base64.StdEncoding.EncodeToString([]byte("bytes"))
	env.images.On("Upload", mock.Anything, "bad.jpg", mock.Anything).
		Return("", assert.AnError)

	body := `{
		"fields": {
			"title": "t",
			"description": "d",
			"city": "Manizales",
			"neighborhood": "Palermo"
		},
		"images": [{"filename": "bad.jpg", "data": "` + payload + `"}]
	}`

	rec := env.do(http.MethodPost, "/api/admin/properties", body)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "nothing was saved")
	env.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateProperty_ReplacesImages(t *testing.T) {
	env := newAdminTestEnv(t)
	td := helpers.NewTestData()

	existing := td.PublishedProperty("p1", "Manizales", "Palermo", 100)
	existing.Images = []listing.Image{
		{ID: "old", URL: "/media/old.jpg", IsPrincipal: true},
	}

	env.repo.On("GetByID", mock.Anything, contracts.AdminSession(env.token), "p1").
		Return(existing, nil)
	env.repo.On("Update", mock.Anything, "p1", mock.MatchedBy(func(p *listing.Property) bool {
		return len(p.Images) == 1 && p.Images[0].URL == "/media/new.jpg"
	})).Return(existing, nil)

	body := `{
		"fields": {"price": "200"},
		"images": [{"url": "/media/new.jpg", "is_principal": true}]
	}`

	rec := env.do(http.MethodPut, "/api/admin/properties/p1", body)

	require.Equal(t, http.StatusOK, rec.Code)
	env.repo.AssertExpectations(t)
}

func TestUpdateProperty_MissingRecord(t *testing.T) {
	env := newAdminTestEnv(t)

	env.repo.On("GetByID", mock.Anything, contracts.AdminSession(env.token), "ghost").
		Return(nil, contracts.ErrNotFound)

	rec := env.do(http.MethodPut, "/api/admin/properties/ghost", `{"fields": {}}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProperty(t *testing.T) {
	env := newAdminTestEnv(t)
	td := helpers.NewTestData()

	p := td.PublishedProperty("p1", "Manizales", "Palermo", 100)
	p.Images = []listing.Image{{ID: "i1", URL: "/media/a.jpg", IsPrincipal: true}}
	env.repo.On("GetByID", mock.Anything, contracts.AdminSession(env.token), "p1").Return(p, nil)
	env.repo.On("Delete", mock.Anything, "p1").Return(nil)
	env.images.On("Remove", mock.Anything, "/media/a.jpg").Return(nil)

	rec := env.do(http.MethodDelete, "/api/admin/properties/p1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env.repo.AssertExpectations(t)
	env.images.AssertExpectations(t)
}

func TestDashboard(t *testing.T) {
	env := newAdminTestEnv(t)
	td := helpers.NewTestData()

	env.repo.On("List", mock.Anything, contracts.AdminSession(env.token)).
		Return([]*listing.Property{
			td.PublishedProperty("p1", "Manizales", "Palermo", 100),
			td.DraftProperty("d1"),
		}, nil)

	rec := env.do(http.MethodGet, "/api/admin/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var vm presenters.DashboardVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	assert.Equal(t, 2, vm.Total)
	assert.Equal(t, 1, vm.Published)
	assert.Equal(t, 1, vm.Drafts)
}
