package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"bioportal/internal/core/circuitbreaker"
	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
	"bioportal/internal/core/ports"
	"bioportal/internal/core/tracing"
)

// BatchDesignMapping maps the RFdiffusion3 batch columns onto run fields.
var BatchDesignMapping = domain.ColumnMapping{
	"output_prefix": "output_prefix",
	"id":            "id",
	"num_designs":   "num_designs",
	"scaffold_pdb":  "scaffold_pdb",
	"constraints":   "constraints",
}

type DesignService struct {
	registry       ports.BackendRegistry
	defaultBackend string
	breakers       map[string]*circuitbreaker.CircuitBreaker
}

// NewDesignService creates the design dispatcher. Backends listed in external
// run behind a circuit breaker.
func NewDesignService(registry ports.BackendRegistry, defaultBackend string, external ...string) *DesignService {
	s := &DesignService{
		registry:       registry,
		defaultBackend: defaultBackend,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(external)),
	}
	for _, name := range external {
		s.breakers[name] = circuitbreaker.New("design-"+name, isCallerError)
	}
	return s
}

func (s *DesignService) DefaultBackend() string {
	return s.defaultBackend
}

func (s *DesignService) Backends() []string {
	return s.registry.Names()
}

// Run validates cfg and executes it on the named backend ("" selects the
// default). Failures are returned as-is and never retried.
func (s *DesignService) Run(ctx context.Context, backendName string, cfg domain.RunConfig) (results []domain.RunResult, err error) {
	if backendName == "" {
		backendName = s.defaultBackend
	}

	ctx, span := tracing.StartSpan(ctx, "design.run",
		attribute.String("design.backend", backendName),
		attribute.Int("design.count", cfg.NumDesigns),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := s.registry.Get(backendName)
	if err != nil {
		return nil, err
	}

	if cb, ok := s.breakers[backendName]; ok {
		err = cb.Execute(ctx, func() error {
			var runErr error
			results, runErr = backend.Run(ctx, cfg)
			return runErr
		})
	} else {
		results, err = backend.Run(ctx, cfg)
	}
	if err != nil {
		logger.WarnContext(ctx, "Design run failed", "backend", backendName, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Design run finished", "backend", backendName, "designs", len(results))
	return results, nil
}

// RowHandler adapts Run to the batch loop. Each row becomes one run whose
// prefix comes from output_prefix, then id, then design_<row>.
func (s *DesignService) RowHandler(backendName string) RowHandler {
	return func(ctx context.Context, index int, fields domain.Fields) (domain.RowResult, error) {
		cfg, err := RunConfigFromFields(index, fields)
		if err != nil {
			return domain.RowResult{}, err
		}

		results, err := s.Run(ctx, backendName, cfg)
		if err != nil {
			return domain.RowResult{}, err
		}

		artifacts := domain.ArtifactsFromResults(results)
		if len(artifacts) == 0 {
			return domain.RowResult{Status: domain.RowStatusFailed, Message: "backend returned no structures"}, nil
		}
		if len(artifacts) == 1 {
			artifacts[0].Name = cfg.OutputPrefix + ".pdb"
		}
		return domain.RowResult{
			Status:    domain.RowStatusDone,
			Artifacts: artifacts,
			Message:   fmt.Sprintf("%d design(s)", len(artifacts)),
		}, nil
	}
}

// RunConfigFromFields builds the run for one batch row.
func RunConfigFromFields(index int, fields domain.Fields) (domain.RunConfig, error) {
	cfg := domain.NewRunConfig()

	switch {
	case fields.Text("output_prefix") != "":
		cfg.OutputPrefix = fields.Text("output_prefix")
	case fields.Text("id") != "":
		cfg.OutputPrefix = fields.Text("id")
	default:
		cfg.OutputPrefix = fmt.Sprintf("design_%d", index)
	}

	if raw := fields.Text("num_designs"); raw != "" {
		n, err := parseCount(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: num_designs %q is not a positive integer", domain.ErrInvalidInput, raw)
		}
		cfg.NumDesigns = n
	}

	if scaffold, ok := fields.Get("scaffold_pdb"); ok && strings.TrimSpace(scaffold) != "" {
		if strings.Contains(scaffold, "\n") {
			cfg.Scaffold = []byte(scaffold)
		} else {
			cfg.ScaffoldPath = strings.TrimSpace(scaffold)
		}
	}

	if c := fields.Text("constraints"); c != "" {
		cfg.Constraints = c
	}

	return cfg, nil
}

var countPattern = regexp.MustCompile(`^(\d+)(\.0+)?$`)

// parseCount accepts "3" as well as spreadsheet renderings such as "3.0".
// Exponents and fractions are rejected.
func parseCount(raw string) (int, error) {
	m := countPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, errors.New("not a positive integer")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, errors.New("not a positive integer")
	}
	return n, nil
}

// isCallerError reports errors that say nothing about backend health.
func isCallerError(err error) bool {
	return errors.Is(err, domain.ErrNotImplemented) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, context.Canceled)
}
