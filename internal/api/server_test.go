package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"configurator/internal/catalog"
	"configurator/internal/config"
	pimconnector "configurator/internal/connectors/pim"
	"configurator/internal/events"
	"configurator/internal/logger"
	"configurator/internal/media"
	"configurator/internal/metrics"
	"configurator/internal/models"
	"configurator/internal/services/pim"
	"configurator/internal/sofas"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testServer struct {
	router    *gin.Engine
	publisher *recordingPublisher
}

func upstream(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/references":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":42,"francecanape_title":"Oslo","provider_title":"Atelier"}]}`))
	case "/tissutheque":
		_, _ = w.Write([]byte(`[{"code":"A"},{"code":"B"}]`))
	default:
		w.WriteHeader(http.StatusBadGateway)
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pimUpstream := httptest.NewServer(http.HandlerFunc(upstream))
	t.Cleanup(pimUpstream.Close)

	storage, err := media.NewStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	cfg := &config.Config{
		AllowedOrigins:  "*",
		MaxUploadBytes:  1 << 20,
		AssetsDir:       t.TempDir(),
		PlaceholderFile: "missing.jpg",
	}
	log := logger.Nop()
	m := metrics.New()
	client := pim.NewClient(pim.ClientConfig{BaseURL: pimUpstream.URL, Timeout: time.Second}, nil, m, log)
	publisher := &recordingPublisher{}

	srv := New(cfg, log, Deps{
		Store:     catalog.NewSeededStore(),
		Sofas:     sofas.NewMemoryRepository(sofas.SeedSofas()),
		PIM:       client,
		Connector: pimconnector.New(client, log),
		Media:     storage,
		Publisher: publisher,
		Metrics:   m,
	})
	return &testServer{router: srv.GetRouter(), publisher: publisher}
}

func (ts *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return ts.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func photoRequest(t *testing.T, path string, withFile bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if withFile {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{R: 200, A: 255})
		fw, err := mw.CreateFormFile("photo", "salon.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, img))
	} else {
		require.NoError(t, mw.WriteField("caption", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.get(t, "/api/families")
	rec = ts.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/families"`)
}

func TestListFamiliesAppliesFilters(t *testing.T) {
	ts := newTestServer(t)

	var all []models.ProductFamily
	decode(t, ts.get(t, "/api/families"), &all)
	assert.Len(t, all, len(catalog.SeedFamilies()))

	var convertibles []models.ProductFamily
	decode(t, ts.get(t, "/api/families?type=convertible"), &convertibles)
	require.NotEmpty(t, convertibles)
	for _, f := range convertibles {
		assert.Equal(t, models.FamilyTypeConvertible, f.FamilyType)
	}

	var ignored []models.ProductFamily
	decode(t, ts.get(t, "/api/families?maxWidth=abc&minDepth=-3"), &ignored)
	assert.Len(t, ignored, len(all))
}

func TestFamilySummary(t *testing.T) {
	ts := newTestServer(t)

	var summaries []map[string]interface{}
	decode(t, ts.get(t, "/api/families/summary"), &summaries)
	require.NotEmpty(t, summaries)

	var oslo map[string]interface{}
	for _, s := range summaries {
		if s["id"] == "oslo-fixe" {
			oslo = s
		}
	}
	require.NotNil(t, oslo)
	assert.Equal(t, 1290.0, oslo["entryPrice"])
	assert.True(t, strings.HasSuffix(oslo["priceLabel"].(string), "€"))
	assert.Equal(t, []interface{}{"store", "stock", "instock_stores"}, oslo["availability"])
}

func TestFamilyAndVariantLookups(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/families/oslo-fixe")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.get(t, "/api/families/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Family not found"}`, rec.Body.String())

	var variant models.Variant
	decode(t, ts.get(t, "/api/families/oslo-fixe/variants/oslo-2p"), &variant)
	assert.Equal(t, "oslo-2p", variant.ID)

	rec = ts.get(t, "/api/families/oslo-fixe/variants/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Variant not found"}`, rec.Body.String())

	var related []models.ProductFamily
	decode(t, ts.get(t, "/api/families/milano-convertible/related"), &related)
	for _, f := range related {
		assert.NotEqual(t, "milano-convertible", f.ID)
		assert.Equal(t, models.FamilyTypeConvertible, f.FamilyType)
	}

	rec = ts.get(t, "/api/families/oslo-fixe/related?limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogReferenceData(t *testing.T) {
	ts := newTestServer(t)

	var categories []models.FabricCategory
	decode(t, ts.get(t, "/api/fabric-categories"), &categories)
	require.NotEmpty(t, categories)
	for i := 1; i < len(categories); i++ {
		assert.LessOrEqual(t, categories[i-1].DisplayOrder, categories[i].DisplayOrder)
	}

	var legs models.LegCatalog
	decode(t, ts.get(t, "/api/legs"), &legs)
	assert.NotEmpty(t, legs.Types)
	assert.NotEmpty(t, legs.Colors)
}

func TestUploadVariantPhoto(t *testing.T) {
	ts := newTestServer(t)

	var before models.Variant
	decode(t, ts.get(t, "/api/families/oslo-fixe/variants/oslo-2p"), &before)

	rec := ts.do(t, photoRequest(t, "/api/families/oslo-fixe/variants/oslo-2p/photos", true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Variant
	decode(t, rec, &updated)
	require.Len(t, updated.Gallery, len(before.Gallery)+1)
	added := updated.Gallery[len(updated.Gallery)-1]
	assert.Equal(t, models.GallerySourceManual, added.SourceType)
	assert.True(t, strings.HasPrefix(added.URL, media.PublicPrefix+"/"))
	assert.True(t, strings.HasSuffix(added.URL, "-salon.png"))

	assert.Equal(t, []string{events.TypeGalleryImageAdded}, ts.publisher.types())

	served := ts.get(t, added.URL)
	assert.Equal(t, http.StatusOK, served.Code)
}

func TestUploadVariantPhotoErrors(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, photoRequest(t, "/api/families/oslo-fixe/variants/oslo-2p/photos", false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No photo file provided"}`, rec.Body.String())

	rec = ts.do(t, photoRequest(t, "/api/families/oslo-fixe/variants/nope/photos", true))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, ts.publisher.types())
}

func TestSofaRoutes(t *testing.T) {
	ts := newTestServer(t)

	var list []map[string]interface{}
	decode(t, ts.get(t, "/api/sofas"), &list)
	require.Len(t, list, 6)
	assert.Equal(t, "1299.00", list[0]["price"])

	var filtered []models.Sofa
	decode(t, ts.get(t, "/api/sofas/filter?type=fixe&inStore=true"), &filtered)
	require.Len(t, filtered, 2)
	for _, s := range filtered {
		assert.Equal(t, "fixe", s.Type)
		assert.True(t, s.InStore)
	}

	id := list[0]["id"].(string)
	rec := ts.get(t, "/api/sofas/"+id)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.get(t, "/api/sofas/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Sofa not found"}`, rec.Body.String())

	rec = ts.do(t, photoRequest(t, "/api/sofas/"+id+"/photos", true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var withPhoto models.Sofa
	decode(t, rec, &withPhoto)
	assert.Len(t, withPhoto.Images, 2)

	rec = ts.do(t, photoRequest(t, "/api/sofas/"+id+"/photos", false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSofaCreateAndUpdate(t *testing.T) {
	ts := newTestServer(t)

	body := `{"name":"Roma","type":"fixe","width":190,"depth":90,"height":80,"price":"1390.50","comfort":"Ferme","mainImage":"/placeholder.jpg","inStock":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/sofas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := ts.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]interface{}
	decode(t, rec, &created)
	assert.Equal(t, "1390.50", created["price"])
	assert.Equal(t, []interface{}{}, created["images"])
	id := created["id"].(string)
	require.NotEmpty(t, id)

	req = httptest.NewRequest(http.MethodPatch, "/api/sofas/"+id, strings.NewReader(`{"onOrder":true,"name":"Roma II"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = ts.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Sofa
	decode(t, rec, &updated)
	assert.Equal(t, "Roma II", updated.Name)
	assert.True(t, updated.OnOrder)
	assert.True(t, updated.InStock)

	req = httptest.NewRequest(http.MethodPost, "/api/sofas", strings.NewReader(`{"name":"Roma","type":"banquette"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, ts.do(t, req).Code)
}

func TestPIMProxyAndAdaptedRoutes(t *testing.T) {
	ts := newTestServer(t)

	var raw map[string]interface{}
	decode(t, ts.get(t, "/api/references"), &raw)
	assert.Len(t, raw["data"], 1)

	rec := ts.get(t, "/api/stocks")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	var family models.ProductFamily
	decode(t, ts.get(t, "/api/pim/families/42"), &family)
	assert.Equal(t, "42", family.ID)
	assert.Equal(t, "Oslo", family.Name)

	rec = ts.get(t, "/api/pim/families/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var bundle pimconnector.Bundle
	decode(t, ts.get(t, "/api/pim/catalog"), &bundle)
	assert.Len(t, bundle.Families, 1)
	assert.Len(t, bundle.FabricCategories, 2)
	assert.Empty(t, bundle.Availability)
}

func TestPIMRefresh(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pim/refresh", strings.NewReader(`{"endpoints":["admin"]}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, ts.do(t, req).Code)
	assert.Empty(t, ts.publisher.types())

	rec := ts.do(t, httptest.NewRequest(http.MethodPost, "/api/pim/refresh", nil))
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	var resp struct {
		ID        string   `json:"id"`
		Endpoints []string `json:"endpoints"`
	}
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, pim.Endpoints, resp.Endpoints)
	assert.Equal(t, []string{events.TypePIMRefreshRequested}, ts.publisher.types())
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/families", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := ts.do(t, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBootstrapInMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DatabaseURL:    "memory://",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: "*",
		PIMBaseURL:     "http://127.0.0.1:1",
		PIMTimeout:     time.Second,
	}

	srv, cleanup, err := Bootstrap(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	ts := &testServer{router: srv.GetRouter()}

	var list []models.Sofa
	decode(t, ts.get(t, "/api/sofas"), &list)
	assert.Len(t, list, 6)

	rec := ts.get(t, "/api/stocks")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.NoError(t, srv.Stop(context.Background()))
}
