package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ethernal-Tech/peggy-relayer/api/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

type testController struct{}

func (testController) GetPathPrefix() string {
	return "Test"
}

func (testController) GetEndpoints() []*core.APIEndpoint {
	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	return []*core.APIEndpoint{
		{Path: "Open", Method: http.MethodGet, Handler: handler},
		{Path: "Closed", Method: http.MethodGet, Handler: handler, APIKeyAuth: true},
		{Path: "Panic", Method: http.MethodGet, Handler: func(http.ResponseWriter, *http.Request) {
			panic("handler failure")
		}},
	}
}

func TestAPIRoutes(t *testing.T) {
	apiObj, err := NewAPI(context.Background(), core.APIConfig{
		PathPrefix:     "api",
		AllowedHeaders: []string{"Content-Type"},
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		APIKeyHeader:   "X-API-KEY",
		APIKeys:        []string{"secret"},
	}, []core.APIController{testController{}}, hclog.NewNullLogger())
	require.NoError(t, err)

	serve := func(path, apiKey string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if apiKey != "" {
			req.Header.Set("X-API-KEY", apiKey)
		}

		w := httptest.NewRecorder()
		apiObj.handler.ServeHTTP(w, req)

		return w.Code
	}

	require.Equal(t, http.StatusOK, serve("/api/Test/Open", ""))
	require.Equal(t, http.StatusUnauthorized, serve("/api/Test/Closed", ""))
	require.Equal(t, http.StatusUnauthorized, serve("/api/Test/Closed", "wrong"))
	require.Equal(t, http.StatusOK, serve("/api/Test/Closed", "secret"))
	require.Equal(t, http.StatusNotFound, serve("/api/Test/Missing", "secret"))
}

func TestAPIPanicIsRecovered(t *testing.T) {
	apiObj, err := NewAPI(context.Background(), core.APIConfig{PathPrefix: "/api/"},
		[]core.APIController{testController{}}, hclog.NewNullLogger())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	apiObj.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/Test/Panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAPIDuplicateEndpoint(t *testing.T) {
	_, err := NewAPI(context.Background(), core.APIConfig{PathPrefix: "api"},
		[]core.APIController{testController{}, testController{}}, hclog.NewNullLogger())
	require.ErrorContains(t, err, "registered twice")
}

func TestAPIDisposeBeforeStart(t *testing.T) {
	apiObj, err := NewAPI(context.Background(), core.APIConfig{}, nil, hclog.NewNullLogger())
	require.NoError(t, err)
	require.NoError(t, apiObj.Dispose())
}

func TestJoinPath(t *testing.T) {
	require.Equal(t, "/api/Status/Contract", joinPath("/api/", "Status", "/Contract"))
	require.Equal(t, "/Status/Contract", joinPath("", "Status", "Contract"))
	require.Equal(t, "/", joinPath("", "/"))
}
