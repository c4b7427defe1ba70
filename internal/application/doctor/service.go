package doctor

import (
	"context"
	"fmt"
	"net/url"

	configapp "github.com/doeshing/agpt/internal/application/config"
	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", "valid"))
	}

	checks = append(checks,
		credentialCheck(cfg),
		endpointCheck(cfg),
		placeholderCheck(cfg),
	)

	return domain.HealthReport{Checks: checks}, nil
}

func credentialCheck(cfg domain.Config) domain.HealthCheck {
	if cfg.HasCredential() {
		return ok("API key", "credential available")
	}
	envVar := cfg.API.AuthEnvVar
	if envVar == "" {
		envVar = domain.DefaultAuthEnvVar
	}
	return warn("API key", fmt.Sprintf("%s missing and api.api_key not set", envVar))
}

func endpointCheck(cfg domain.Config) domain.HealthCheck {
	endpoint := cfg.GetEndpoint()
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fail("Endpoint", err.Error())
	}
	if parsed.Scheme != "https" {
		return warn("Endpoint", fmt.Sprintf("%s is not HTTPS; the credential is sent in clear text", endpoint))
	}
	return ok("Endpoint", fmt.Sprintf("%s (model %s, timeout %s)", endpoint, cfg.GetModel(), cfg.GetTimeout()))
}

func placeholderCheck(cfg domain.Config) domain.HealthCheck {
	n := len(cfg.GetPlaceholders())
	if n == 0 {
		return fail("Example prompts", "catalog is empty")
	}
	return ok("Example prompts", fmt.Sprintf("%d in catalog", n))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
