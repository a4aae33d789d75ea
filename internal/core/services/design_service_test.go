package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bioportal/internal/adapters/backend"
	"bioportal/internal/core/domain"
)

type flakyBackend struct {
	calls int
	err   error
}

func (f *flakyBackend) Name() string { return "flaky" }

func (f *flakyBackend) Run(ctx context.Context, cfg domain.RunConfig) ([]domain.RunResult, error) {
	f.calls++
	return nil, f.err
}

func newTestDesignService(extra ...*flakyBackend) *DesignService {
	registry := backend.NewRegistry(backend.NewStub(), backend.NewCLI("", ""), backend.NewAPI("", ""))
	external := []string{backend.NameCLI, backend.NameAPI}
	if len(extra) > 0 {
		registry = backend.NewRegistry(backend.NewStub(), extra[0])
		external = []string{extra[0].Name()}
	}
	return NewDesignService(registry, backend.NameStub, external...)
}

func TestDesignService_RunStub(t *testing.T) {
	cfg := domain.NewRunConfig()
	cfg.NumDesigns = 3

	results, err := newTestDesignService().Run(context.Background(), "", cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"design_0.pdb", "design_1.pdb", "design_2.pdb"}
	if len(results) != len(want) {
		t.Fatalf("Run() returned %d results", len(results))
	}
	for i, r := range results {
		if r.OutputName != want[i] || !r.OK() {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestDesignService_RunErrors(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		mutate  func(*domain.RunConfig)
		want    error
	}{
		{name: "cli not implemented", backend: backend.NameCLI, want: domain.ErrNotImplemented},
		{name: "api not implemented", backend: backend.NameAPI, want: domain.ErrNotImplemented},
		{name: "unknown backend", backend: "slurm", want: domain.ErrUnknownBackend},
		{name: "zero designs", backend: backend.NameStub, mutate: func(c *domain.RunConfig) { c.NumDesigns = 0 }, want: domain.ErrInvalidInput},
		{name: "too many designs", backend: backend.NameStub, mutate: func(c *domain.RunConfig) { c.NumDesigns = domain.MaxDesigns + 1 }, want: domain.ErrInvalidInput},
		{name: "huge design count", backend: backend.NameStub, mutate: func(c *domain.RunConfig) { c.NumDesigns = 200000000 }, want: domain.ErrInvalidInput},
		{name: "bad constraints", backend: backend.NameStub, mutate: func(c *domain.RunConfig) { c.Constraints = "{motif" }, want: domain.ErrInvalidInput},
	}

	svc := newTestDesignService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.NewRunConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			results, err := svc.Run(context.Background(), tt.backend, cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
			if results != nil {
				t.Errorf("Run() returned results on error")
			}
		})
	}
}

func TestDesignService_NotImplementedNeverTripsBreaker(t *testing.T) {
	svc := newTestDesignService()
	for i := 0; i < 10; i++ {
		_, err := svc.Run(context.Background(), backend.NameCLI, domain.NewRunConfig())
		if !errors.Is(err, domain.ErrNotImplemented) {
			t.Fatalf("call %d error = %v, want ErrNotImplemented", i, err)
		}
	}
}

func TestDesignService_NoRetry(t *testing.T) {
	flaky := &flakyBackend{err: errors.New("connection reset")}
	svc := newTestDesignService(flaky)

	if _, err := svc.Run(context.Background(), "flaky", domain.NewRunConfig()); err == nil {
		t.Fatal("Run() expected error")
	}
	if flaky.calls != 1 {
		t.Errorf("backend called %d times, want 1", flaky.calls)
	}
}

func TestRunConfigFromFields(t *testing.T) {
	tests := []struct {
		name       string
		fields     domain.Fields
		wantPrefix string
		wantCount  int
		wantErr    error
	}{
		{name: "output prefix wins", fields: domain.Fields{"output_prefix": "binder", "id": "x"}, wantPrefix: "binder", wantCount: 1},
		{name: "falls back to id", fields: domain.Fields{"id": "p53"}, wantPrefix: "p53", wantCount: 1},
		{name: "falls back to row", fields: domain.Fields{}, wantPrefix: "design_4", wantCount: 1},
		{name: "num designs", fields: domain.Fields{"num_designs": "3"}, wantPrefix: "design_4", wantCount: 3},
		{name: "spreadsheet float", fields: domain.Fields{"num_designs": "2.0"}, wantPrefix: "design_4", wantCount: 2},
		{name: "bad num designs", fields: domain.Fields{"num_designs": "many"}, wantErr: domain.ErrInvalidInput},
		{name: "zero num designs", fields: domain.Fields{"num_designs": "0"}, wantErr: domain.ErrInvalidInput},
		{name: "exponent num designs", fields: domain.Fields{"num_designs": "2e6"}, wantErr: domain.ErrInvalidInput},
		{name: "fractional num designs", fields: domain.Fields{"num_designs": "2.5"}, wantErr: domain.ErrInvalidInput},
		{name: "overflowing num designs", fields: domain.Fields{"num_designs": "99999999999999999999999"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := RunConfigFromFields(4, tt.fields)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.OutputPrefix != tt.wantPrefix || cfg.NumDesigns != tt.wantCount {
				t.Errorf("cfg = %+v", cfg)
			}
		})
	}
}

func TestRunConfigFromFields_Scaffold(t *testing.T) {
	cfg, _ := RunConfigFromFields(0, domain.Fields{"scaffold_pdb": domain.StubPDB})
	if len(cfg.Scaffold) == 0 || cfg.ScaffoldPath != "" {
		t.Errorf("inline scaffold not used: %+v", cfg)
	}

	cfg, _ = RunConfigFromFields(0, domain.Fields{"scaffold_pdb": " scaffolds/1abc.pdb "})
	if cfg.ScaffoldPath != "scaffolds/1abc.pdb" || cfg.Scaffold != nil {
		t.Errorf("scaffold path not kept: %+v", cfg)
	}
}

func TestDesignService_RowHandler(t *testing.T) {
	svc := newTestDesignService()
	batch := NewBatchService()

	rows := []domain.Record{
		{"output_prefix": "alpha"},
		{"id": "beta", "num_designs": "2"},
		{"num_designs": "-1"},
		{},
	}

	outcomes := batch.Process(context.Background(), rows, BatchDesignMapping, svc.RowHandler(backend.NameStub), nil)

	if len(outcomes) != 4 {
		t.Fatalf("got %d outcomes", len(outcomes))
	}
	if outcomes[0].Status != domain.RowStatusDone || outcomes[0].Artifacts[0].Name != "alpha.pdb" {
		t.Errorf("row 0 = %+v", outcomes[0])
	}
	if len(outcomes[1].Artifacts) != 2 || outcomes[1].Artifacts[1].Name != "beta_1.pdb" {
		t.Errorf("row 1 = %+v", outcomes[1])
	}
	if outcomes[2].Status != domain.RowStatusFailed || outcomes[2].Kind != domain.KindInvalidInput {
		t.Errorf("row 2 = %+v", outcomes[2])
	}
	if outcomes[3].Artifacts[0].Name != "design_3.pdb" {
		t.Errorf("row 3 = %+v", outcomes[3])
	}

	all := domain.CollectArtifacts(outcomes)
	if len(all) != 4 {
		t.Errorf("CollectArtifacts() = %d artifacts, want 4", len(all))
	}
}

func TestDesignService_RowHandlerNotImplemented(t *testing.T) {
	outcomes := NewBatchService().Process(context.Background(), []domain.Record{{"id": "a"}, {"id": "b"}},
		BatchDesignMapping, newTestDesignService().RowHandler(backend.NameAPI), nil)

	for _, o := range outcomes {
		if o.Status != domain.RowStatusFailed || o.Kind != domain.KindNotImplemented {
			t.Errorf("row %d = %+v", o.Row, o)
		}
	}
}

func TestDesignService_RowHandlerRejectsLargeCounts(t *testing.T) {
	rows := []domain.Record{
		{"id": "exp", "num_designs": "2e6"},
		{"id": "big", "num_designs": "500"},
		{"id": "max", "num_designs": fmt.Sprint(domain.MaxDesigns)},
	}
	outcomes := NewBatchService().Process(context.Background(), rows, BatchDesignMapping,
		newTestDesignService().RowHandler(backend.NameStub), nil)

	for _, o := range outcomes[:2] {
		if o.Status != domain.RowStatusFailed || o.Kind != domain.KindInvalidInput || len(o.Artifacts) != 0 {
			t.Errorf("row %d = %+v, want invalid_input failure", o.Row, o)
		}
	}
	if last := outcomes[2]; last.Status != domain.RowStatusDone || len(last.Artifacts) != domain.MaxDesigns {
		t.Errorf("row at the limit = %d artifacts, status %s", len(last.Artifacts), last.Status)
	}
}
