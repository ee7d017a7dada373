package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/admins"
	"github.com/primeauto/showroom-api/internal/cars"
	"github.com/primeauto/showroom-api/internal/cars/repository"
	"github.com/primeauto/showroom-api/internal/cars/service"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/tokens"
)

type fakeStore struct {
	uploads int
}

func (f *fakeStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, string, error) {
	f.uploads++
	id := fmt.Sprintf("cars/%d-%s", f.uploads, filename)
	return "http://img.local/" + id, id, nil
}

func (f *fakeStore) Delete(ctx context.Context, assetID string) error { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "cars-handler-test-secret-32-bytes-"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

func newTestRouter(cfg *config.Config) *gin.Engine {
	svc := service.NewService(repository.NewMemoryRepo(), &fakeStore{})
	g := gin.New()
	NewCarHandler(cfg, svc).Register(g.Group("/"))
	return g
}

func adminToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	a := &admins.Admin{ID: primitive.NewObjectID(), Email: "boss@example.com", Role: role}
	tok, err := tokens.GenerateAccessToken(cfg, a, time.Hour)
	require.NoError(t, err)
	return tok
}

// carForm builds a multipart body with the given scalar fields and image
// filenames (sent as JPEG parts).
func carForm(t *testing.T, fields map[string]string, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range imageNames {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, name))
		hdr.Set("Content-Type", "image/jpeg")
		pw, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = pw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func doMultipart(g *gin.Engine, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	g.ServeHTTP(w, req)
	return w
}

func createCar(t *testing.T, g *gin.Engine, token string, imageNames []string) cars.Car {
	t.Helper()
	body, ct := carForm(t, map[string]string{"name": "Vitz", "price": "500000", "description": "clean"}, imageNames)
	w := doMultipart(g, http.MethodPost, "/cars", token, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Car cars.Car `json:"car"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Car
}

func TestCreateCar(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	car := createCar(t, g, token, []string{"front.jpg", "back.jpg"})
	require.Len(t, car.Images, 2)
	assert.Equal(t, "Vitz", car.Name)
	assert.Equal(t, float64(500000), car.Price)

	// created car is retrievable
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cars/"+car.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCarRequiresImages(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	body, ct := carForm(t, map[string]string{"name": "Vitz", "price": "1", "description": "d"}, nil)
	w := doMultipart(g, http.MethodPost, "/cars", token, body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCarRejectsBadPrice(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	body, ct := carForm(t, map[string]string{"name": "Vitz", "price": "cheap", "description": "d"}, []string{"a.jpg"})
	w := doMultipart(g, http.MethodPost, "/cars", token, body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCarAuth(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)

	body, ct := carForm(t, map[string]string{"name": "Vitz", "price": "1", "description": "d"}, []string{"a.jpg"})
	w := doMultipart(g, http.MethodPost, "/cars", "", body, ct)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	body, ct = carForm(t, map[string]string{"name": "Vitz", "price": "1", "description": "d"}, []string{"a.jpg"})
	w = doMultipart(g, http.MethodPost, "/cars", adminToken(t, cfg, "customer"), body, ct)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestListCars(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)
	createCar(t, g, token, []string{"a.jpg"})

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cars", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []cars.Car
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestGetCarNotFound(t *testing.T) {
	g := newTestRouter(testConfig())
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cars/64f000000000000000000000", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCarRemovesImages(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	car := createCar(t, g, token, []string{"a.jpg", "b.jpg"})
	removed := car.Images[0].AssetID

	removeJSON, _ := json.Marshal([]string{removed})
	body, ct := carForm(t, map[string]string{"removeImages": string(removeJSON)}, nil)
	w := doMultipart(g, http.MethodPut, "/cars/"+car.ID.Hex(), token, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Car cars.Car `json:"car"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Car.Images, 1)
	assert.NotEqual(t, removed, resp.Car.Images[0].AssetID)
}

func TestUpdateCarPartialFields(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	car := createCar(t, g, token, []string{"a.jpg"})

	body, ct := carForm(t, map[string]string{"price": "450000"}, nil)
	w := doMultipart(g, http.MethodPut, "/cars/"+car.ID.Hex(), token, body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Car cars.Car `json:"car"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(450000), resp.Car.Price)
	assert.Equal(t, "Vitz", resp.Car.Name, "omitted fields keep their values")
}

func TestUpdateCarNotFound(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	body, ct := carForm(t, map[string]string{"price": "1"}, nil)
	w := doMultipart(g, http.MethodPut, "/cars/64f000000000000000000000", token, body, ct)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCar(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	car := createCar(t, g, token, []string{"a.jpg"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cars/"+car.ID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cars/"+car.ID.Hex(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCarNotFound(t *testing.T) {
	cfg := testConfig()
	g := newTestRouter(cfg)
	token := adminToken(t, cfg, admins.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cars/64f000000000000000000000", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
