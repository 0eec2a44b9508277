package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
)

type resolverMock struct {
	mock.Mock
}

func (m *resolverMock) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*userservice.User)
	return user, args.Error(1)
}

// captureRequester обработчик, запоминающий Requester из контекста
func captureRequester(out *domain.Requester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*out, _ = GetRequester(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "42", want: http.StatusNoContent},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not a number", header: "abc", want: http.StatusUnauthorized},
		{name: "zero", header: "0", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderUserID, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, int64(42), gotID)
			}
		})
	}
}

func TestIdentity_FromHeaders(t *testing.T) {
	var got domain.Requester
	h := Auth(Identity(nil, logger.Discard())(captureRequester(&got)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserName, "Asha")
	req.Header.Set(HeaderUserRole, "Admin")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, domain.Requester{UserID: 7, Name: "Asha", Role: domain.RoleAdmin}, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "8")
	req.Header.Set(HeaderUserRole, "root")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestIdentity_FromResolver(t *testing.T) {
	resolver := &resolverMock{}
	resolver.On("GetUserWithGracefulDegradation", mock.Anything, int64(7)).
		Return(&userservice.User{ID: 7, Name: "Asha", Role: "superadmin"}, nil)
	resolver.On("GetUserWithGracefulDegradation", mock.Anything, int64(8)).
		Return(nil, userservice.ErrServiceDegraded)
	resolver.On("GetUserWithGracefulDegradation", mock.Anything, int64(9)).
		Return(nil, userservice.ErrUserNotFound)

	var got domain.Requester
	h := Auth(Identity(resolver, logger.Discard())(captureRequester(&got)))

	serve := func(id string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, id)
		// заголовки роли игнорируются при наличии сервиса пользователей
		req.Header.Set(HeaderUserRole, "admin")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve("7"))
	assert.Equal(t, domain.Requester{UserID: 7, Name: "Asha", Role: domain.RoleSuperAdmin}, got)

	assert.Equal(t, http.StatusNoContent, serve("8"))
	assert.Equal(t, domain.Requester{UserID: 8, Role: domain.RoleUser}, got)

	assert.Equal(t, http.StatusUnauthorized, serve("9"))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/venues/{venueId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/venues/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/venues/{venueId}", "404"),
	))
}

func TestWithRequester(t *testing.T) {
	ctx := WithRequester(context.Background(), domain.Requester{UserID: 3, Role: domain.RoleAdmin})

	id, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	requester, ok := GetRequester(ctx)
	assert.True(t, ok)
	assert.True(t, requester.IsPrivileged())

	_, ok = GetRequester(context.Background())
	assert.False(t, ok)
}
