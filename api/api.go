package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/api/core"
	"github.com/Ethernal-Tech/peggy-relayer/api/utils"
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
)

const (
	apiStartDelay     = 5 * time.Second
	apiShutdownPeriod = 5 * time.Second
)

// APIImpl serves the relayer status controllers
type APIImpl struct {
	ctx       context.Context
	apiConfig core.APIConfig
	handler   http.Handler
	logger    hclog.Logger

	lock    sync.Mutex
	server  *http.Server
	stopped chan struct{}
}

var _ core.API = (*APIImpl)(nil)

func NewAPI(
	ctx context.Context, apiConfig core.APIConfig,
	controllers []core.APIController, logger hclog.Logger,
) (
	*APIImpl, error,
) {
	router := mux.NewRouter().StrictSlash(true)
	registered := map[string]bool{}

	for _, controller := range controllers {
		for _, endpoint := range controller.GetEndpoints() {
			endpointPath := joinPath(apiConfig.PathPrefix, controller.GetPathPrefix(), endpoint.Path)
			routeKey := endpoint.Method + " " + endpointPath

			if registered[routeKey] {
				return nil, fmt.Errorf("api endpoint registered twice: %s", routeKey)
			}

			registered[routeKey] = true

			endpointHandler := endpoint.Handler
			if endpoint.APIKeyAuth {
				endpointHandler = withAPIKeyAuth(apiConfig, endpointHandler, logger)
			}

			router.HandleFunc(endpointPath, endpointWrapper(endpointPath, endpointHandler, logger)).
				Methods(endpoint.Method)

			logger.Debug("Registered api endpoint", "endpoint", endpointPath, "method", endpoint.Method)
		}
	}

	handler := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)(router)

	handler = handlers.CORS(
		handlers.AllowedHeaders(apiConfig.AllowedHeaders),
		handlers.AllowedOrigins(apiConfig.AllowedOrigins),
		handlers.AllowedMethods(apiConfig.AllowedMethods),
	)(handler)

	return &APIImpl{
		ctx:       ctx,
		apiConfig: apiConfig,
		handler:   handler,
		logger:    logger,
		stopped:   make(chan struct{}),
	}, nil
}

// Start blocks until the api is disposed or the context is done
func (api *APIImpl) Start() {
	defer close(api.stopped)

	// the port may still be held by a previous run
	select {
	case <-api.ctx.Done():
		return
	case <-time.After(apiStartDelay):
	}

	err := common.RetryForever(api.ctx, apiStartDelay, func(ctx context.Context) error {
		srvCtx, cancelFunc := context.WithCancel(ctx)
		defer cancelFunc()

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", api.apiConfig.Port),
			Handler:           api.handler,
			ReadHeaderTimeout: 3 * time.Second,
			BaseContext:       func(l net.Listener) context.Context { return srvCtx },
		}

		api.lock.Lock()
		api.server = server
		api.lock.Unlock()

		api.logger.Debug("Starting api", "port", api.apiConfig.Port)

		err := server.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		api.logger.Error("Failed to start api, retrying", "err", err,
			"port", api.apiConfig.Port, "process", utils.FormatProcessOnPort(api.apiConfig.Port))

		return err
	})
	if err != nil && !common.IsContextDoneErr(err) {
		api.logger.Error("api stopped with error", "err", err)
	}

	api.logger.Debug("Stopped api")
}

func (api *APIImpl) Dispose() error {
	api.lock.Lock()
	server := api.server
	api.lock.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiShutdownPeriod)
	defer cancel()

	var errs []error

	if err := server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("api shutdown failed: %w", err))

		if err := server.Close(); err != nil {
			errs = append(errs, fmt.Errorf("api close failed: %w", err))
		}
	}

	select {
	case <-api.stopped:
	case <-ctx.Done():
		api.logger.Warn("api not stopped after shutdown", "timeout", apiShutdownPeriod)
	}

	return errors.Join(errs...)
}

func joinPath(parts ...string) string {
	var sb strings.Builder

	for _, part := range parts {
		if part = strings.Trim(part, "/"); part != "" {
			sb.WriteString("/")
			sb.WriteString(part)
		}
	}

	if sb.Len() == 0 {
		return "/"
	}

	return sb.String()
}

func endpointWrapper(path string, handler core.APIEndpointHandler, logger hclog.Logger) core.APIEndpointHandler {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		handler(w, r)

		logger.Debug("endpoint called", "path", path, "url", r.URL, "duration", time.Since(start))
	}
}

func withAPIKeyAuth(
	apiConfig core.APIConfig, handler core.APIEndpointHandler, logger hclog.Logger,
) core.APIEndpointHandler {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKeyHeaderValue := r.Header.Get(apiConfig.APIKeyHeader)

		for _, apiKey := range apiConfig.APIKeys {
			if apiKeyHeaderValue != "" && apiKey == apiKeyHeaderValue {
				handler(w, r)

				return
			}
		}

		utils.WriteUnauthorizedResponse(w, r, logger)
	}
}

type recoveryLogger struct {
	logger hclog.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.logger.Error("api handler panicked", "err", fmt.Sprint(args...))
}
