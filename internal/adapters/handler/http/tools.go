package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"bioportal/internal/adapters/batchfile"
	"bioportal/internal/adapters/upload"
	"bioportal/internal/core/domain"
	"bioportal/internal/core/services"
	"bioportal/internal/web/components"
)

// Session artifact sets.
const (
	setRFD3           = "rfdiffusion3"
	setRFD3Batch      = "rfdiffusion3-batch"
	setRFD3BatchInput = "rfdiffusion3-batch-input"
	setMPNN           = "proteinmpnn"
	setADMET          = "admet"
)

func runStatus(err error) string {
	if err == nil {
		return string(domain.RunStatusSucceeded)
	}
	if kind := domain.Classify(err); kind == domain.KindNotImplemented {
		return string(kind)
	}
	return string(domain.RunStatusFailed)
}

func (s *Server) rfd3View(sess *domain.Session) components.RFD3View {
	backend := s.deps.Design.DefaultBackend()
	v := components.RFD3View{
		NumDesigns:   "1",
		OutputPrefix: domain.DefaultOutputPrefix,
		Constraints:  domain.DefaultConstraints,
		Backend:      backend,
		Backends:     s.deps.Design.Backends(),
		BatchID:      uuid.NewString(),
		BatchBackend: backend,
		Set:          setRFD3,
		BatchSet:     setRFD3Batch,
	}
	if sess != nil {
		v.Results = sess.Outputs[setRFD3]
		if in := sess.Outputs[setRFD3BatchInput]; len(in) > 0 {
			v.BatchFile = in[0].Name
		}
	}
	return v
}

func rfd3Page(v components.RFD3View) *PageResponse {
	return &PageResponse{Title: "RFdiffusion3", Active: domain.ToolRFdiffusion3, Body: components.RFD3Page(v)}
}

func (s *Server) handleRFD3Page(w http.ResponseWriter, r *http.Request) *PageResponse {
	return rfd3Page(s.rfd3View(sessionFrom(r.Context())))
}

func (s *Server) handleRFD3Run(w http.ResponseWriter, r *http.Request) *PageResponse {
	ctx := r.Context()
	sess := sessionFrom(ctx)
	v := s.rfd3View(sess)
	v.Results = nil

	if err := s.parseForm(w, r); err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return rfd3Page(v)
	}

	v.NumDesigns = strings.TrimSpace(r.PostFormValue("num_designs"))
	v.OutputPrefix = r.PostFormValue("output_prefix")
	v.Constraints = r.PostFormValue("constraints")
	if b := r.PostFormValue("backend"); b != "" {
		v.Backend = b
	}

	cfg := domain.NewRunConfig()
	cfg.OutputPrefix = strings.TrimSpace(v.OutputPrefix)
	if c := strings.TrimSpace(v.Constraints); c != "" {
		cfg.Constraints = c
	}
	n, err := strconv.Atoi(v.NumDesigns)
	if err != nil || n < 1 || n > domain.MaxDesigns {
		v.Notices = append(v.Notices, warning(fmt.Sprintf("Number of designs must be a whole number between 1 and %d.", domain.MaxDesigns)))
		return rfd3Page(v)
	}
	cfg.NumDesigns = n

	scaffold, err := s.readUpload(r, "scaffold", upload.StructureTypes)
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return rfd3Page(v)
	}
	ligand, err := s.readUpload(r, "ligand", upload.LigandTypes)
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return rfd3Page(v)
	}
	cfg.Scaffold = scaffold.Bytes()
	cfg.Ligand = ligand.Bytes()

	results, err := s.deps.Design.Run(ctx, v.Backend, cfg)
	RecordRun(domain.ToolRFdiffusion3, v.Backend, runStatus(err))
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return rfd3Page(v)
	}

	arts := domain.ArtifactsFromResults(results)
	RecordDesigns(v.Backend, len(arts))
	if err := s.deps.Sessions.StoreOutputs(ctx, sess, setRFD3, arts); err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return rfd3Page(v)
	}
	v.Results = arts
	v.Notices = append(v.Notices, success(fmt.Sprintf("Generated %d design(s).", len(arts))))
	return rfd3Page(v)
}

// batchInput returns the uploaded batch file, falling back to the file the
// session kept from an earlier preview.
func (s *Server) batchInput(r *http.Request, sess *domain.Session) (*upload.File, error) {
	f, err := s.readUpload(r, "batch_file", upload.BatchTypes)
	if err != nil || f != nil {
		return f, err
	}
	if in := sess.Outputs[setRFD3BatchInput]; len(in) > 0 {
		return &upload.File{Name: in[0].Name, Data: in[0].Data}, nil
	}
	return nil, nil
}

func (s *Server) handleRFD3Batch(w http.ResponseWriter, r *http.Request) *PageResponse {
	ctx := r.Context()
	sess := sessionFrom(ctx)
	v := s.rfd3View(sess)

	if err := s.parseForm(w, r); err != nil {
		v.BatchNotices = append(v.BatchNotices, notice(r, err))
		return rfd3Page(v)
	}
	if b := r.PostFormValue("backend"); b != "" {
		v.BatchBackend = b
	}

	batchID := v.BatchID
	if id, err := uuid.Parse(r.PostFormValue("batch_id")); err == nil {
		batchID = id.String()
	}

	f, err := s.batchInput(r, sess)
	if err != nil {
		v.BatchNotices = append(v.BatchNotices, notice(r, err))
		return rfd3Page(v)
	}
	if f == nil {
		v.BatchNotices = append(v.BatchNotices, warning("Please upload a CSV or Excel batch file."))
		return rfd3Page(v)
	}

	table, err := batchfile.Parse(f.Name, f.Data)
	if err != nil {
		_ = s.deps.Sessions.StoreOutputs(ctx, sess, setRFD3BatchInput, nil)
		v.BatchFile = ""
		v.BatchNotices = append(v.BatchNotices, components.Notice{Kind: components.MessageError, Text: batchfile.Message(err)})
		return rfd3Page(v)
	}
	if err := s.deps.Sessions.StoreOutputs(ctx, sess, setRFD3BatchInput, []domain.Artifact{{Name: f.Name, Data: f.Data}}); err != nil {
		v.BatchNotices = append(v.BatchNotices, notice(r, err))
		return rfd3Page(v)
	}
	v.BatchFile = f.Name
	v.BatchTable = table

	if r.PostFormValue("action") != "run" {
		return rfd3Page(v)
	}

	outcomes := s.deps.Batch.Process(ctx, table.Records, services.BatchDesignMapping,
		s.deps.Design.RowHandler(v.BatchBackend),
		s.deps.Progress.Reporter(ctx, batchID, domain.ToolRFdiffusion3),
	)
	for _, o := range outcomes {
		RecordBatchRow(domain.ToolRFdiffusion3, string(o.Status))
	}

	arts := domain.CollectArtifacts(outcomes)
	if err := s.deps.Sessions.StoreOutputs(ctx, sess, setRFD3Batch, arts); err != nil {
		v.BatchNotices = append(v.BatchNotices, notice(r, err))
	}
	v.BatchOutcomes = outcomes
	v.BatchFiles = len(arts)

	summary := domain.Summarize(outcomes)
	if len(arts) > 0 {
		v.BatchNotices = append(v.BatchNotices, success(fmt.Sprintf("Generated %d designs.", len(arts))))
	}
	if summary.Failed > 0 {
		v.BatchNotices = append(v.BatchNotices, warning(fmt.Sprintf("%d of %d rows failed.", summary.Failed, summary.Total)))
	}
	return rfd3Page(v)
}

func (s *Server) handleAlphaFold(w http.ResponseWriter, r *http.Request) *PageResponse {
	v := components.AlphaFoldView{Model: domain.ModelMonomer, Recycles: "3"}
	resp := func() *PageResponse {
		return &PageResponse{Title: "AlphaFold-like", Active: domain.ToolAlphaFold, Body: components.AlphaFoldPage(v)}
	}
	if r.Method != http.MethodPost {
		return resp()
	}

	if err := s.parseForm(w, r); err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	if m := r.PostFormValue("model"); m == domain.ModelMultimer {
		v.Model = m
	}
	recycles, err := strconv.Atoi(r.PostFormValue("recycles"))
	if err != nil || recycles < 1 || recycles > 20 {
		recycles = 3
	}
	v.Recycles = strconv.Itoa(recycles)

	seq, err := s.readUpload(r, "sequence", upload.SequenceTypes)
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	if seq != nil {
		v.Preview = upload.Preview(seq.Data, upload.DefaultPreviewLines)
	}

	err = s.deps.Tools.PredictStructure(r.Context(), domain.StructureRequest{Sequence: seq.Bytes(), Model: v.Model, Recycles: recycles})
	RecordRun(domain.ToolAlphaFold, "", runStatus(err))
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
	}
	return resp()
}

func (s *Server) handleMPNN(w http.ResponseWriter, r *http.Request) *PageResponse {
	ctx := r.Context()
	v := components.MPNNView{NumSequences: "8", Temperature: "0.1", Set: setMPNN}
	resp := func() *PageResponse {
		return &PageResponse{Title: "ProteinMPNN", Active: domain.ToolProteinMPNN, Body: components.MPNNPage(v)}
	}
	if r.Method != http.MethodPost {
		return resp()
	}

	if err := s.parseForm(w, r); err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	v.NumSequences = strings.TrimSpace(r.PostFormValue("num_sequences"))
	v.Temperature = strings.TrimSpace(r.PostFormValue("temperature"))

	req := domain.SequenceDesignRequest{}
	var err error
	if req.NumSequences, err = strconv.Atoi(v.NumSequences); err != nil {
		v.Notices = append(v.Notices, warning("Number of sequences must be a whole number."))
		return resp()
	}
	if req.Temperature, err = strconv.ParseFloat(v.Temperature, 64); err != nil {
		v.Notices = append(v.Notices, warning("Sampling temperature must be a number."))
		return resp()
	}

	backbone, err := s.readUpload(r, "backbone", upload.StructureTypes)
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	req.Backbone = backbone.Bytes()
	v.Backbone = req.Backbone

	out, err := s.deps.Tools.DesignSequences(ctx, req)
	RecordRun(domain.ToolProteinMPNN, "", runStatus(err))
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
	}
	if out != nil {
		if err := s.deps.Sessions.StoreOutputs(ctx, sessionFrom(ctx), setMPNN, out.Artifacts); err != nil {
			v.Notices = append(v.Notices, notice(r, err))
		}
		v.Output = out
	}
	return resp()
}

func (s *Server) handleDocking(w http.ResponseWriter, r *http.Request) *PageResponse {
	v := components.DockingView{Mode: domain.DockingProteinLigand, Exhaustiveness: "8"}
	resp := func() *PageResponse {
		return &PageResponse{Title: "Molecular Docking", Active: domain.ToolDocking, Body: components.DockingPage(v)}
	}
	if r.Method != http.MethodPost {
		return resp()
	}

	if err := s.parseForm(w, r); err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	if m := r.PostFormValue("mode"); m == domain.DockingProteinProtein {
		v.Mode = m
	}
	v.Exhaustiveness = strings.TrimSpace(r.PostFormValue("exhaustiveness"))
	exhaustiveness, err := strconv.Atoi(v.Exhaustiveness)
	if err != nil {
		v.Notices = append(v.Notices, warning("Search exhaustiveness must be a whole number."))
		return resp()
	}

	protein, err := s.readUpload(r, "protein", upload.StructureTypes)
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	ligand, err := s.readUpload(r, "ligand", upload.DockingLigandTypes)
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	v.Protein = protein.Bytes()

	err = s.deps.Tools.Dock(r.Context(), domain.DockingRequest{
		Protein:        protein.Bytes(),
		Ligand:         ligand.Bytes(),
		Mode:           v.Mode,
		Exhaustiveness: exhaustiveness,
	})
	RecordRun(domain.ToolDocking, "", runStatus(err))
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
	}
	return resp()
}

func (s *Server) handleADMET(w http.ResponseWriter, r *http.Request) *PageResponse {
	ctx := r.Context()
	v := components.ADMETView{
		InputMode:  components.InputSMILES,
		Properties: domain.DefaultADMETProperties,
		Set:        setADMET,
	}
	resp := func() *PageResponse {
		return &PageResponse{Title: "ADMET Prediction", Active: domain.ToolADMET, Body: components.ADMETPage(v)}
	}
	if r.Method != http.MethodPost {
		return resp()
	}

	if err := s.parseForm(w, r); err != nil {
		v.Notices = append(v.Notices, notice(r, err))
		return resp()
	}
	v.Properties = r.PostForm["properties"]
	if r.PostFormValue("input_mode") == components.InputFile {
		v.InputMode = components.InputFile
	}

	req := domain.ADMETRequest{Properties: v.Properties}
	if v.InputMode == components.InputSMILES {
		v.SMILES = r.PostFormValue("smiles")
		req.SMILES = v.SMILES
	} else {
		molecules, err := s.readUpload(r, "molecules", upload.MoleculeTypes)
		if err != nil {
			v.Notices = append(v.Notices, notice(r, err))
			return resp()
		}
		req.Molecules = molecules.Bytes()
	}

	out, err := s.deps.Tools.PredictADMET(ctx, req)
	RecordRun(domain.ToolADMET, "", runStatus(err))
	if err != nil {
		v.Notices = append(v.Notices, notice(r, err))
	}
	if out != nil {
		if err := s.deps.Sessions.StoreOutputs(ctx, sessionFrom(ctx), setADMET, out.Artifacts); err != nil {
			v.Notices = append(v.Notices, notice(r, err))
		}
		for _, row := range domain.ExampleADMETRows {
			v.Rows = append(v.Rows, []string{row[0], row[1]})
		}
		v.Artifacts = out.Artifacts
	}
	return resp()
}
