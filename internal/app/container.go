package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/doeshing/agpt/internal/application/completion"
	"github.com/doeshing/agpt/internal/application/doctor"
	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/infrastructure/ai"
	"github.com/doeshing/agpt/internal/infrastructure/config"
	"github.com/doeshing/agpt/internal/infrastructure/placeholder"
	"github.com/doeshing/agpt/internal/pkg/logger"
	"github.com/doeshing/agpt/internal/ports"
)

// Options selects how the container is built.
type Options struct {
	ConfigPath string
	Verbose    bool
	// HTTPClient overrides the transport's client; mostly useful in tests.
	HTTPClient *http.Client
}

// Container wires up application services with infrastructure adapters.
// Configuration, credential and generation parameters are read once here and
// injected; nothing below reads them from globals.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	Picker         *placeholder.Picker
	Builder        *ai.RequestBuilder
	Transport      *ai.HTTPTransport
	Normalizer     *ai.Normalizer
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(opts.Verbose)

	picker, err := placeholder.NewPicker(cfg.GetPlaceholders(), nil)
	if err != nil {
		return nil, fmt.Errorf("placeholders in %s: %w", cfgLoader.Path(), err)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.GetTimeout()}
	}
	transport := ai.NewHTTPTransport(ai.TransportConfig{
		Endpoint:     cfg.GetEndpoint(),
		Credential:   cfg.ResolveCredential(),
		Organization: cfg.ResolveOrganization(),
	}, client, log)

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Picker:         picker,
		Builder:        ai.NewRequestBuilder(cfg.GenerationParameters()),
		Transport:      transport,
		Normalizer:     ai.NewNormalizer(),
		DoctorService:  &doctor.Service{ConfigProvider: cfgLoader},
	}, nil
}

// NewOrchestrator starts a fresh session. Each session has its own history,
// last prompt and placeholder.
func (c *Container) NewOrchestrator() (*completion.Orchestrator, error) {
	return completion.New(completion.Options{
		Builder:    c.Builder,
		Transport:  c.Transport,
		Normalizer: c.Normalizer,
		Picker:     c.Picker,
		Logger:     c.Logger,
		Timeout:    c.Config.GetTimeout(),
	})
}
