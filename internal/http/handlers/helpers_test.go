package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/auth"
	"github.com/hongminglow/estate-be/internal/events"
	"github.com/hongminglow/estate-be/internal/geo"
	"github.com/hongminglow/estate-be/internal/media"
	"github.com/hongminglow/estate-be/internal/middleware"
	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/storage/memory"
	"github.com/hongminglow/estate-be/internal/store"
)

var testNow = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

type recordedEvent struct {
	subject string
	payload any
}

type recordingPublisher struct{ events []recordedEvent }

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.events = append(p.events, recordedEvent{subject: subject, payload: payload})
	return nil
}

func (p *recordingPublisher) subjects() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.subject)
	}
	return out
}

type stubAssistant struct {
	suggestions []string
	description string
	facilities  string
}

func (s stubAssistant) SearchSuggestions(context.Context, string) []string { return s.suggestions }
func (s stubAssistant) PropertyDescription(context.Context, models.Property) string {
	return s.description
}
func (s stubAssistant) NearbyFacilities(context.Context, string) string { return s.facilities }

type stubGeocoder struct {
	place geo.Place
	found bool
	err   error
}

func (s stubGeocoder) Search(context.Context, string) (geo.Place, bool, error) {
	return s.place, s.found, s.err
}
func (s stubGeocoder) Reverse(context.Context, float64, float64) (geo.Place, bool, error) {
	return s.place, s.found, s.err
}

type stubUploader struct {
	names []string
}

func (s *stubUploader) Upload(_ context.Context, fileName, _ string, _ []byte) (string, error) {
	s.names = append(s.names, fileName)
	return "http://minio:9000/listing-images/images/" + fileName, nil
}

type testEnv struct {
	t        *testing.T
	handler  http.Handler
	store    *store.Store
	session  *store.Session
	tokens   *auth.TokenManager
	events   *recordingPublisher
	uploader *stubUploader
}

type envOption func(*envConfig)

type envConfig struct {
	assistant Assistant
	geocoder  Geocoder
	uploader  media.Uploader
}

func withAssistant(a Assistant) envOption { return func(c *envConfig) { c.assistant = a } }
func withGeocoder(g Geocoder) envOption   { return func(c *envConfig) { c.geocoder = g } }
func withoutUploads() envOption           { return func(c *envConfig) { c.uploader = nil } }

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	kv := memory.New()
	st, err := store.New(context.Background(), kv, logger, store.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	env := &testEnv{
		t:        t,
		store:    st,
		session:  store.NewSession(kv, logger),
		tokens:   auth.NewTokenManager("test-secret", "estate-be", time.Hour),
		events:   &recordingPublisher{},
		uploader: &stubUploader{},
	}
	cfg := envConfig{
		assistant: stubAssistant{},
		geocoder:  stubGeocoder{},
		uploader:  env.uploader,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	now := func() time.Time { return testNow }
	var pub events.Publisher = env.events
	mux := http.NewServeMux()
	NewHealthHandler(testNow, "memory").Register(mux)
	NewAuthHandler(st, env.session, env.tokens, logger).Register(mux)
	NewPropertyHandler(st, pub, logger, now).Register(mux)
	NewWizardHandler().Register(mux)
	NewMessageHandler(st, pub, logger, now).Register(mux)
	NewWishlistHandler(st, logger).Register(mux)
	NewAIHandler(st, cfg.assistant).Register(mux)
	NewGeoHandler(cfg.geocoder, logger).Register(mux)
	NewMediaHandler(cfg.uploader, logger).Register(mux)
	env.handler = middleware.Session(env.tokens, mux)
	return env
}

func (e *testEnv) tokenFor(u models.User) string {
	e.t.Helper()
	token, err := e.tokens.Generate(u)
	require.NoError(e.t, err)
	return token
}

// envelope mirrors respond.Envelope with a raw data field for per-test decoding.
type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (e *testEnv) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(req)
}

func (e *testEnv) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func draftBody() map[string]any {
	return map[string]any{
		"title":       "Nice Flat",
		"description": "A lovely place near the station",
		"type":        "FLAT",
		"price":       18000,
		"bedrooms":    2,
		"bathrooms":   1,
		"area":        650,
		"location":    "Powai, Mumbai",
		"images":      []string{"https://img.example/powai.jpg"},
		"amenities":   []string{"Gym"},
	}
}
