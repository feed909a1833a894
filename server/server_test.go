package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/TuftsBCB/microenv/pdb"
	"github.com/TuftsBCB/microenv/smr"
	"github.com/TuftsBCB/structure"
	"github.com/gin-gonic/gin"
)

// writePeptide writes a straight poly-alanine chain with a lysine and a
// glutamate next to each other, and returns the path of the file.
func writePeptide(t *testing.T, name string, start int) string {
	entry := pdb.NewEntry(name)
	residues := []string{"ALA", "ALA", "LYS", "GLU", "ALA", "ALA"}
	for i, res := range residues {
		x := 3.8 * float64(i)
		add := func(atom string, dx, dy float64) {
			entry.Add(pdb.AtomRecord{
				Name:        atom,
				ResidueName: res,
				Chain:       'A',
				SequenceNum: start + i,
				Coords:      structure.Coords{X: x + dx, Y: dy},
			})
		}
		add("N", -1.2, 0.9)
		add("CA", 0, 0)
		add("C", 1.2, 0.9)
		add("O", 1.2, 2.1)
		switch res {
		case "LYS":
			add("NZ", 0, 3.5)
		case "GLU":
			add("OE1", 0, 3.5)
		}
	}

	fp := filepath.Join(t.TempDir(), name)
	f, err := os.Create(fp)
	if err != nil {
		t.Fatalf("%s", err)
	}
	defer f.Close()
	if err := pdb.Write(f, entry.Atoms); err != nil {
		t.Fatalf("%s", err)
	}
	return fp
}

func setupTestServer(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)
	cfg := smr.DefaultConfig()
	cfg.Workers = 2
	eng, err := smr.NewEngine(cfg, nil)
	if err != nil {
		t.Fatalf("%s", err)
	}
	return New(eng, nil)
}

func post(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	var buf []byte
	switch b := body.(type) {
	case string:
		buf = []byte(b)
	default:
		var err error
		if buf, err = json.Marshal(body); err != nil {
			t.Fatalf("%s", err)
		}
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)
	req := httptest.NewRequest("GET", "/healthz", nil)
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 but got %d.", resp.Code)
	}
}

func TestEvaluate(t *testing.T) {
	s := setupTestServer(t)
	design := writePeptide(t, "design.pdb", 1)
	natural := writePeptide(t, "natural.pdb", 11)

	resp := post(t, s, "/v1/smr", smr.Request{
		DesignPath:    design,
		NaturalPath:   natural,
		DesignResidue: 4,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 but got %d: %s", resp.Code, resp.Body)
	}
	var res smr.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("%s", err)
	}
	if res.Status != "success" || res.NaturalResid != 14 || res.SMR != 1 {
		t.Fatalf("Unexpected result: %s", resp.Body)
	}
	if res.Design.SaltBridges != 1 {
		t.Fatalf("Expected 1 salt bridge but got %d.", res.Design.SaltBridges)
	}
	if res.Metadata.RadiusUsed != smr.DefaultRadius {
		t.Fatalf("Expected the default radius but got %f.", res.Metadata.RadiusUsed)
	}

	zero := 0.0
	resp = post(t, s, "/v1/smr", smr.Request{
		DesignPath:    design,
		NaturalPath:   natural,
		DesignResidue: 4,
		Radius:        &zero,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 for radius 0 but got %d: %s", resp.Code, resp.Body)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("%s", err)
	}
	if res.Metadata.RadiusUsed != 0 || res.Design.Total != 0 {
		t.Fatalf("Unexpected result at radius 0: %s", resp.Body)
	}
}

func TestEvaluateErrors(t *testing.T) {
	s := setupTestServer(t)
	design := writePeptide(t, "design.pdb", 1)
	natural := writePeptide(t, "natural.pdb", 1)
	missing := filepath.Join(t.TempDir(), "missing.pdb")
	negative := -1.0

	tests := []struct {
		name   string
		body   interface{}
		status int
		kind   string
	}{
		{"malformed json", `{"design_pdb": `, http.StatusBadRequest, kindBadRequest},
		{"no design", smr.Request{NaturalPath: natural, DesignResidue: 1},
			http.StatusBadRequest, kindBadRequest},
		{"negative radius", smr.Request{DesignPath: design, NaturalPath: natural,
			DesignResidue: 1, Radius: &negative}, http.StatusBadRequest,
			kindBadRequest},
		{"unmappable", smr.Request{DesignPath: design, NaturalPath: natural,
			DesignResidue: 99}, http.StatusUnprocessableEntity,
			smr.KindUnmappableResidue},
		{"load failure", smr.Request{DesignPath: missing, NaturalPath: natural,
			DesignResidue: 1}, http.StatusBadRequest, smr.KindStructureLoad},
	}
	for _, test := range tests {
		resp := post(t, s, "/v1/smr", test.body)
		if resp.Code != test.status {
			t.Fatalf("%s: expected status %d but got %d: %s",
				test.name, test.status, resp.Code, resp.Body)
		}
		var body map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: %s", test.name, err)
		}
		if body["status"] != "error" || body["kind"] != test.kind ||
			body["error"] == "" {
			t.Fatalf("%s: unexpected error body %s", test.name, resp.Body)
		}
	}
}

func TestBatch(t *testing.T) {
	s := setupTestServer(t)
	design := writePeptide(t, "design.pdb", 1)
	natural := writePeptide(t, "natural.pdb", 1)

	resp := post(t, s, "/v1/smr/batch", batchRequest{Requests: []smr.Request{
		{DesignPath: design, NaturalPath: natural, DesignResidue: 3},
		{DesignPath: design, NaturalPath: natural, DesignResidue: 99},
	}})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 but got %d: %s", resp.Code, resp.Body)
	}
	var body batchResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s", err)
	}
	if len(body.Results) != 2 {
		t.Fatalf("Expected 2 results but got %d.", len(body.Results))
	}
	if body.Results[0].Result == nil || body.Results[0].Result.NaturalResid != 3 {
		t.Fatalf("Unexpected first result: %s", resp.Body)
	}
	if body.Results[1].Kind != smr.KindUnmappableResidue {
		t.Fatalf("Unexpected second result: %s", resp.Body)
	}

	if resp := post(t, s, "/v1/smr/batch", batchRequest{}); resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for an empty batch but got %d.", resp.Code)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&smr.UnmappableResidueError{Residue: 1}, http.StatusUnprocessableEntity},
		{&smr.MissingReferenceAtomError{Residue: 1}, http.StatusUnprocessableEntity},
		{&smr.StructureLoadError{Path: "x"}, http.StatusBadRequest},
		{os.ErrPermission, http.StatusInternalServerError},
	}
	for _, test := range tests {
		if got := statusOf(test.err); got != test.status {
			t.Fatalf("statusOf(%T): expected %d but got %d.",
				test.err, test.status, got)
		}
	}
}
