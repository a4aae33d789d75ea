package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bioportal/internal/adapters/backend"
	"bioportal/internal/adapters/session"
	"bioportal/internal/core/domain"
	"bioportal/internal/core/services"
)

type testPortal struct {
	*httptest.Server
	client *http.Client
	hub    *Hub
}

func newTestPortal(t *testing.T, password string) *testPortal {
	t.Helper()

	store := session.NewMemoryStore(0)
	sessions := services.NewSessionService(store, time.Hour)
	registry := backend.NewRegistry(backend.NewStub(), backend.NewCLI("", ""), backend.NewAPI("", ""))

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	srv := NewServer(Deps{
		Design:        services.NewDesignService(registry, backend.NameStub, backend.NameCLI, backend.NameAPI),
		Batch:         services.NewBatchService(),
		Tools:         services.NewToolService(),
		Sessions:      sessions,
		Auth:          services.NewAuthService(password, sessions, 10),
		Health:        services.NewHealthService("test", nil),
		Progress:      services.NewProgressFanout(hub),
		Hub:           hub,
		EnableMetrics: true,
	})
	ts := httptest.NewServer(srv.Handler())

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	t.Cleanup(func() {
		ts.Close()
		cancel()
		store.Close()
	})
	return &testPortal{Server: ts, client: client, hub: hub}
}

func (p *testPortal) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := p.client.Get(p.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (p *testPortal) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := p.client.PostForm(p.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

type fileField struct {
	name string
	data string
}

func (p *testPortal) postMultipart(t *testing.T, path string, fields map[string]string, files map[string]fileField) (*http.Response, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for field, f := range files {
		fw, err := mw.CreateFormFile(field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(fw, f.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	resp, err := p.client.Post(p.URL+path, mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (p *testPortal) postJSON(t *testing.T, path, payload string) (*http.Response, string) {
	t.Helper()
	resp, err := p.client.Post(p.URL+path, "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected status %d, got %d", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode)
	}
}

func expectContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	p := newTestPortal(t, "")

	resp, body := p.get(t, "/health/live")
	expectStatus(t, resp, http.StatusOK)
	if body != "ok" {
		t.Errorf("liveness body = %q", body)
	}

	resp, _ = p.get(t, "/health/ready")
	expectStatus(t, resp, http.StatusOK)

	resp, body = p.get(t, "/api/health/detailed")
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, `"status":"healthy"`)

	resp, body = p.get(t, "/metrics")
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "http_requests_total")
}

func TestHome_AuthDisabled(t *testing.T) {
	p := newTestPortal(t, "")

	resp, body := p.get(t, "/")
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "Bioinformatics Portal", "Open RFdiffusion3", "Open ADMET Prediction")
	if strings.Contains(body, `action="/logout"`) {
		t.Error("logout button shown with auth disabled")
	}

	resp, _ = p.get(t, "/login")
	expectStatus(t, resp, http.StatusSeeOther)
}

func TestAuthGate(t *testing.T) {
	p := newTestPortal(t, "s3cret")

	resp, _ := p.get(t, "/tools/admet")
	expectStatus(t, resp, http.StatusSeeOther)
	if loc := resp.Header.Get("Location"); loc != "/login?next=%2Ftools%2Fadmet" {
		t.Errorf("Location = %q", loc)
	}

	resp, body := p.get(t, "/api/tools")
	expectStatus(t, resp, http.StatusUnauthorized)
	expectContains(t, body, "Unauthorized")

	resp, body = p.postForm(t, "/login", url.Values{"password": {"wrong"}, "next": {"/tools/admet"}})
	expectStatus(t, resp, http.StatusUnauthorized)
	expectContains(t, body, "Invalid password")

	resp, _ = p.postForm(t, "/login", url.Values{"password": {"s3cret"}, "next": {"/tools/admet"}})
	expectStatus(t, resp, http.StatusSeeOther)
	if loc := resp.Header.Get("Location"); loc != "/tools/admet" {
		t.Errorf("Location = %q", loc)
	}

	resp, body = p.get(t, "/tools/admet")
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, `action="/logout"`)

	resp, _ = p.postForm(t, "/logout", nil)
	expectStatus(t, resp, http.StatusSeeOther)

	resp, _ = p.get(t, "/tools/admet")
	expectStatus(t, resp, http.StatusSeeOther)
}

func TestLogin_RejectsOffsiteNext(t *testing.T) {
	p := newTestPortal(t, "s3cret")

	resp, _ := p.postForm(t, "/login", url.Values{"password": {"s3cret"}, "next": {"//evil.example"}})
	expectStatus(t, resp, http.StatusSeeOther)
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestLogin_Throttled(t *testing.T) {
	p := newTestPortal(t, "s3cret")

	var last *http.Response
	for i := 0; i < 10; i++ {
		last, _ = p.postForm(t, "/login", url.Values{"password": {"nope"}})
	}
	expectStatus(t, last, http.StatusTooManyRequests)
}

func TestRFD3_SingleRun(t *testing.T) {
	p := newTestPortal(t, "")

	resp, body := p.postMultipart(t, "/tools/rfdiffusion3", map[string]string{
		"num_designs":   "2",
		"output_prefix": "binder",
		"constraints":   "{}",
		"backend":       "stub",
	}, map[string]fileField{
		"scaffold": {name: "scaffold.pdb", data: domain.StubPDB},
	})
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "Generated 2 design(s).", "Design 1", "Design 2",
		"/downloads/rfdiffusion3/binder_0.pdb", "/downloads/rfdiffusion3/binder_1.pdb")

	resp, body = p.get(t, "/downloads/rfdiffusion3/binder_1.pdb")
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "chemical/x-pdb" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body != domain.StubPDB {
		t.Error("downloaded structure differs from the stub payload")
	}

	// Results survive a reload within the session.
	_, body = p.get(t, "/tools/rfdiffusion3")
	expectContains(t, body, "/downloads/rfdiffusion3/binder_0.pdb")
}

func TestRFD3_SingleRunErrors(t *testing.T) {
	p := newTestPortal(t, "")

	tests := []struct {
		name   string
		fields map[string]string
		files  map[string]fileField
		want   string
	}{
		{
			name:   "cli backend",
			fields: map[string]string{"num_designs": "1", "output_prefix": "d", "backend": "cli"},
			want:   "CLI backend not yet implemented",
		},
		{
			name:   "bad constraints",
			fields: map[string]string{"num_designs": "1", "output_prefix": "d", "constraints": "{not json"},
			want:   "Constraints must be valid JSON",
		},
		{
			name:   "zero designs",
			fields: map[string]string{"num_designs": "0", "output_prefix": "d"},
			want:   "Number of designs must be a whole number between 1 and 20.",
		},
		{
			name:   "too many designs",
			fields: map[string]string{"num_designs": "21", "output_prefix": "d"},
			want:   "Number of designs must be a whole number between 1 and 20.",
		},
		{
			name:   "wrong scaffold type",
			fields: map[string]string{"num_designs": "1", "output_prefix": "d"},
			files:  map[string]fileField{"scaffold": {name: "scaffold.sdf", data: "x"}},
			want:   "not an accepted file type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := p.postMultipart(t, "/tools/rfdiffusion3", tt.fields, tt.files)
			expectStatus(t, resp, http.StatusOK)
			expectContains(t, body, tt.want)
			if strings.Contains(body, "Generated") {
				t.Error("failed run reported success")
			}
		})
	}
}

func unzipBody(t *testing.T, body string) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(strings.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(rc)
		rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestRFD3_BatchRun(t *testing.T) {
	p := newTestPortal(t, "")

	csv := "output_prefix,num_designs\nalpha,1\nbeta,abc\ngamma,2\n"
	resp, body := p.postMultipart(t, "/tools/rfdiffusion3/batch",
		map[string]string{"action": "run", "backend": "stub", "batch_id": uuid.NewString()},
		map[string]fileField{"batch_file": {name: "batch.csv", data: csv}},
	)
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "Generated 3 designs.", "1 of 3 rows failed.", "Batch results", "/downloads/rfdiffusion3-batch.zip")

	resp, body = p.get(t, "/downloads/rfdiffusion3-batch.zip")
	expectStatus(t, resp, http.StatusOK)
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "rdf3_batch_results.zip") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	files := unzipBody(t, body)
	for _, name := range []string{"alpha.pdb", "gamma_0.pdb", "gamma_1.pdb"} {
		if files[name] != domain.StubPDB {
			t.Errorf("zip entry %s missing or wrong", name)
		}
	}
	if len(files) != 3 {
		t.Errorf("expected 3 zip entries, got %d", len(files))
	}
}

func TestRFD3_BatchDuplicatePrefixes(t *testing.T) {
	p := newTestPortal(t, "")

	csv := "output_prefix\nbinder\nbinder\n"
	resp, _ := p.postMultipart(t, "/tools/rfdiffusion3/batch",
		map[string]string{"action": "run", "backend": "stub", "batch_id": uuid.NewString()},
		map[string]fileField{"batch_file": {name: "dup.csv", data: csv}},
	)
	expectStatus(t, resp, http.StatusOK)

	_, body := p.get(t, "/downloads/rfdiffusion3-batch.zip")
	files := unzipBody(t, body)
	for _, name := range []string{"binder.pdb", "binder_row2.pdb"} {
		if _, ok := files[name]; !ok {
			t.Errorf("expected %s in %v", name, files)
		}
	}

	resp, _ = p.get(t, "/downloads/rfdiffusion3-batch/binder_row2.pdb")
	expectStatus(t, resp, http.StatusOK)
}

func TestRFD3_BatchPreviewThenRun(t *testing.T) {
	p := newTestPortal(t, "")

	csv := "id\nfirst\nsecond\n"
	resp, body := p.postMultipart(t, "/tools/rfdiffusion3/batch",
		map[string]string{"action": "preview"},
		map[string]fileField{"batch_file": {name: "rows.csv", data: csv}},
	)
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "Total rows: 2", "Loaded file: rows.csv")
	if strings.Contains(body, "Batch results") {
		t.Error("preview must not run the batch")
	}

	resp, body = p.postMultipart(t, "/tools/rfdiffusion3/batch", map[string]string{"action": "run"}, nil)
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "Generated 2 designs.")

	_, body = p.get(t, "/downloads/rfdiffusion3-batch.zip")
	files := unzipBody(t, body)
	if _, ok := files["first.pdb"]; !ok {
		t.Errorf("expected first.pdb in %v", files)
	}
}

func TestRFD3_BatchFileErrors(t *testing.T) {
	p := newTestPortal(t, "")

	tests := []struct {
		name string
		file fileField
		want string
	}{
		{"wrong extension", fileField{name: "rows.json", data: "{}"}, "not an accepted file type"},
		{"empty file", fileField{name: "rows.csv", data: ""}, "File is empty."},
		{"header only", fileField{name: "rows.csv", data: "id,num_designs\n"}, "File is empty."},
		{"broken xlsx", fileField{name: "rows.xlsx", data: "not a workbook"}, `class="msg msg-error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := p.postMultipart(t, "/tools/rfdiffusion3/batch",
				map[string]string{"action": "run"},
				map[string]fileField{"batch_file": tt.file},
			)
			expectStatus(t, resp, http.StatusOK)
			expectContains(t, body, tt.want)
			if strings.Contains(body, "Batch results") {
				t.Error("no rows should be processed")
			}
		})
	}

	resp, body := p.postMultipart(t, "/tools/rfdiffusion3/batch", map[string]string{"action": "run"}, nil)
	expectStatus(t, resp, http.StatusOK)
	expectContains(t, body, "Please upload a CSV or Excel batch file.")
}

func TestRFD3_BatchProgressOverWebsocket(t *testing.T) {
	p := newTestPortal(t, "")
	batchID := uuid.NewString()

	wsURL := "ws" + strings.TrimPrefix(p.URL, "http") + "/api/ws?batch=" + batchID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for p.hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("websocket client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, _ := p.postMultipart(t, "/tools/rfdiffusion3/batch",
		map[string]string{"action": "run", "batch_id": batchID},
		map[string]fileField{"batch_file": {name: "rows.csv", data: "id\na\nb\n"}},
	)
	expectStatus(t, resp, http.StatusOK)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var last domain.ProgressEvent
	for last.Completed < 2 {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg struct {
			Type    string               `json:"type"`
			Payload domain.ProgressEvent `json:"payload"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode %q: %v", data, err)
		}
		if msg.Type != MessageBatchProgress || msg.Payload.BatchID != batchID {
			t.Fatalf("unexpected message %+v", msg)
		}
		if msg.Payload.Completed <= last.Completed {
			t.Fatalf("progress went backwards: %d after %d", msg.Payload.Completed, last.Completed)
		}
		last = msg.Payload
	}
	if last.Total != 2 || last.Fraction != 1 {
		t.Errorf("unexpected final progress %+v", last)
	}
}

func TestAPI_Tools(t *testing.T) {
	p := newTestPortal(t, "")

	resp, body := p.get(t, "/api/tools")
	expectStatus(t, resp, http.StatusOK)

	var got toolsResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Tools) != len(domain.Catalog) {
		t.Errorf("expected %d tools, got %d", len(domain.Catalog), len(got.Tools))
	}
	if strings.Join(got.Backends, ",") != "api,cli,stub" || got.DefaultBackend != "stub" {
		t.Errorf("unexpected backends %v / %s", got.Backends, got.DefaultBackend)
	}
}

func TestAPI_CORSWithoutCredentials(t *testing.T) {
	p := newTestPortal(t, "")

	req, err := http.NewRequest(http.MethodGet, p.URL+"/api/tools", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "https://elsewhere.example")
	resp, err := p.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, resp)

	expectStatus(t, resp, http.StatusOK)
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS origin header on API responses")
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want unset", got)
	}
}

func TestAPI_CreateRun(t *testing.T) {
	p := newTestPortal(t, "")

	resp, body := p.postJSON(t, "/api/rfdiffusion3/runs", `{"num_designs":3}`)
	expectStatus(t, resp, http.StatusOK)

	var run CreateRunResponse
	if err := json.Unmarshal([]byte(body), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}
	for i, r := range run.Results {
		if want := domain.DesignName("design", i); r.OutputName != want || r.Status != domain.RunStatusSucceeded {
			t.Errorf("result %d = %+v, want %s", i, r, want)
		}
	}

	resp, body = p.get(t, run.Downloads[2])
	expectStatus(t, resp, http.StatusOK)
	if body != domain.StubPDB {
		t.Error("download mismatch")
	}

	resp, body = p.get(t, run.Archive)
	expectStatus(t, resp, http.StatusOK)
	if n := len(unzipBody(t, body)); n != 3 {
		t.Errorf("expected 3 zip entries, got %d", n)
	}
}

func TestAPI_CreateRunErrors(t *testing.T) {
	p := newTestPortal(t, "")

	tests := []struct {
		name    string
		payload string
		code    int
	}{
		{"cli not implemented", `{"backend":"cli"}`, http.StatusNotImplemented},
		{"api not implemented", `{"backend":"api"}`, http.StatusNotImplemented},
		{"unknown backend", `{"backend":"gpu"}`, http.StatusBadRequest},
		{"zero designs", `{"num_designs":0}`, http.StatusBadRequest},
		{"too many designs", `{"num_designs":21}`, http.StatusBadRequest},
		{"huge design count", `{"num_designs":200000000}`, http.StatusBadRequest},
		{"blank prefix", `{"output_prefix":"  "}`, http.StatusBadRequest},
		{"invalid json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := p.postJSON(t, "/api/rfdiffusion3/runs", tt.payload)
			expectStatus(t, resp, tt.code)
			expectContains(t, body, `"error"`)
		})
	}
}

func TestPlaceholderTools(t *testing.T) {
	p := newTestPortal(t, "")

	_, body := p.get(t, "/tools/alphafold")
	expectContains(t, body, "Coming soon", "Run prediction")

	_, body = p.postMultipart(t, "/tools/alphafold", map[string]string{"model": "multimer", "recycles": "5"},
		map[string]fileField{"sequence": {name: "seq.fasta", data: ">q\nMKV\n"}})
	expectContains(t, body, "&gt;q\nMKV", "future release")

	_, body = p.postMultipart(t, "/tools/docking", map[string]string{"exhaustiveness": "8"}, nil)
	expectContains(t, body, "Please upload both protein and ligand files")

	_, body = p.postMultipart(t, "/tools/docking", map[string]string{"exhaustiveness": "8"}, map[string]fileField{
		"protein": {name: "p.pdb", data: domain.StubPDB},
		"ligand":  {name: "l.sdf", data: "ligand"},
	})
	expectContains(t, body, "Docking backend not yet integrated", "Protein structure preview")

	_, body = p.postMultipart(t, "/tools/proteinmpnn", map[string]string{"num_sequences": "8", "temperature": "0.1"}, map[string]fileField{
		"backbone": {name: "bb.pdb", data: domain.StubPDB},
	})
	expectContains(t, body, "ProteinMPNN backend not yet integrated", "/downloads/proteinmpnn/mpnn_designs.fasta")

	resp, fasta := p.get(t, "/downloads/proteinmpnn/mpnn_designs.fasta")
	expectStatus(t, resp, http.StatusOK)
	if fasta != domain.ExampleFASTA {
		t.Errorf("fasta = %q", fasta)
	}

	_, body = p.postMultipart(t, "/tools/admet", map[string]string{"input_mode": "SMILES", "smiles": "  "}, nil)
	expectContains(t, body, "Please provide a SMILES string or upload a file")

	_, body = p.postMultipart(t, "/tools/admet", map[string]string{"input_mode": "SMILES", "smiles": "CCO"}, nil)
	expectContains(t, body, "ADMET backend not yet integrated", "Lipinski pass", "/downloads/admet/admet_results.csv")

	resp, csv := p.get(t, "/downloads/admet/admet_results.csv")
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q", ct)
	}
	expectContains(t, csv, "Property,Value", "MW,180.2")
}

func TestDownloads_NotFound(t *testing.T) {
	p := newTestPortal(t, "")

	for _, path := range []string{"/downloads/rfdiffusion3/missing.pdb", "/downloads/rfdiffusion3.zip", "/downloads/rfdiffusion3.tar"} {
		resp, _ := p.get(t, path)
		expectStatus(t, resp, http.StatusNotFound)
	}

	resp, body := p.get(t, "/no/such/page")
	expectStatus(t, resp, http.StatusNotFound)
	expectContains(t, body, "404 Not found")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: please upload a backbone structure", domain.ErrInvalidInput), "Please upload a backbone structure"},
		{fmt.Errorf("%w: CLI backend not yet implemented", domain.ErrNotImplemented), "CLI backend not yet implemented"},
		{errors.New("plain\nfailure"), "Plain failure"},
		{errors.New(""), ""},
	}
	for _, tt := range tests {
		if got := userMessage(tt.err); got != tt.want {
			t.Errorf("userMessage(%q) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":               "/",
		"/tools/admet":   "/tools/admet",
		"//evil.example": "/",
		"/\\evil":        "/",
		"https://x.y/":   "/",
		"/login":         "/",
	}
	for in, want := range tests {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}
