// Package restserver implements the HTTP dashboard and API for pump/compressor
// efficiency data.
package restserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sync"

	"github.com/chrissnell/pumpmon/internal/generator"
	"github.com/chrissnell/pumpmon/internal/log"
	"github.com/chrissnell/pumpmon/internal/query"
	"github.com/chrissnell/pumpmon/internal/types"
	"github.com/chrissnell/pumpmon/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	FS         fs.FS
	logger     *zap.SugaredLogger
	handlers   *Handlers
	engine     *query.Engine
	generator  *generator.Generator

	mu      sync.RWMutex
	dataset *types.Dataset
}

// NewController creates a new REST server controller.  The generator is used
// to produce the initial dataset and to serve regeneration requests.
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, gen *generator.Generator, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		logger:     logger,
		engine:     query.NewEngine(),
		generator:  gen,
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		rc.Port = 8080
	}

	// Generate the initial dataset
	ctrl.dataset = gen.Generate()
	logger.Infow("generated initial dataset",
		"id", ctrl.dataset.ID,
		"readings", len(ctrl.dataset.Readings),
		"critical", ctrl.dataset.CriticalCount())

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up embedded filesystem for assets
	ctrl.FS = GetAssets()

	// Set up router
	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = handlers.LoggingHandler(os.Stdout, router)

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.restConfig.TLSCertPath != "" && c.restConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.TLSCertPath, c.restConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	// API endpoints
	router.HandleFunc("/api/readings", c.handlers.GetReadings).Methods(http.MethodGet)
	router.HandleFunc("/api/latest", c.handlers.GetLatest).Methods(http.MethodGet)
	router.HandleFunc("/api/series", c.handlers.GetEfficiencySeries).Methods(http.MethodGet)
	router.HandleFunc("/api/summary", c.handlers.GetSummary).Methods(http.MethodGet)
	router.HandleFunc("/api/ask", c.handlers.Ask).Methods(http.MethodPost)
	router.HandleFunc("/api/efficiency", c.handlers.CalculateEfficiency).Methods(http.MethodPost)
	router.HandleFunc("/api/export.csv", c.handlers.ExportCSV).Methods(http.MethodGet)
	router.HandleFunc("/api/regenerate", c.handlers.Regenerate).Methods(http.MethodPost)

	// Template endpoints
	router.HandleFunc("/", c.handlers.ServeIndexTemplate)

	// Static file serving
	router.PathPrefix("/").Handler(http.FileServer(http.FS(c.FS)))

	return router
}

// Dataset returns the current dataset snapshot.  Handlers hold the returned
// pointer for the duration of a request; the dataset value itself is never
// mutated, only replaced.
func (c *Controller) Dataset() *types.Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dataset
}

// RegenerateDataset produces a fresh dataset and atomically swaps it in.
// The generator's random source is not safe for concurrent use, so the whole
// generate-and-swap runs under the write lock.
func (c *Controller) RegenerateDataset() *types.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dataset = c.generator.Generate()
	return c.dataset
}
