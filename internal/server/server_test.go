package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facade/pkg/pipeline"
	"github.com/matzehuels/facade/pkg/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(store.NewMemoryStore(), pipeline.NewRunner(nil, nil, logger), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

const createBody = `{
	"name": "test",
	"vertices": [{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":10},{"x":0,"y":10}],
	"floors": 2,
	"seed": 12345
}`

func createPlan(t *testing.T, ts *httptest.Server) store.Record {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/plans", "application/json", strings.NewReader(createBody))
	if err != nil {
		t.Fatalf("POST /api/plans error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST /api/plans status = %d, body = %s", resp.StatusCode, body)
	}
	var rec store.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return rec
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestCreateAndGetPlan(t *testing.T) {
	ts := testServer(t)
	rec := createPlan(t, ts)

	if rec.ID == "" || rec.Hash == "" {
		t.Fatalf("record missing id or hash: %+v", rec)
	}
	if rec.Plan == nil || rec.Plan.FloorCount() != 2 {
		t.Fatal("created record missing plan body")
	}

	resp, err := http.Get(ts.URL + "/api/plans/" + rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	var got store.Record
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Plan == nil || got.Plan.Hash() != rec.Plan.Hash() {
		t.Error("plan did not round-trip through create and get")
	}
}

func TestCreatePlanBadBody(t *testing.T) {
	ts := testServer(t)
	cases := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"unknown field", `{"name":"x","verts":[]}`},
		{"no vertices", `{"name":"x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/plans", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestGetPlanNotFound(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/api/plans/0000-does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "PLAN_NOT_FOUND" {
		t.Errorf("error code = %q, want PLAN_NOT_FOUND", code)
	}
}

func TestListPlans(t *testing.T) {
	ts := testServer(t)
	createPlan(t, ts)
	createPlan(t, ts)

	resp, err := http.Get(ts.URL + "/api/plans")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body struct {
		Plans []store.Record `json:"plans"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(body.Plans))
	}
	for _, p := range body.Plans {
		if p.Plan != nil {
			t.Error("listing included plan bodies")
		}
	}
}

func TestDeletePlan(t *testing.T) {
	ts := testServer(t)
	rec := createPlan(t, ts)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/plans/"+rec.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", resp.StatusCode)
	}

	get, err := http.Get(ts.URL + "/api/plans/" + rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", get.StatusCode)
	}
}

func TestRenderPlan(t *testing.T) {
	ts := testServer(t)
	rec := createPlan(t, ts)

	resp, err := http.Get(ts.URL + "/api/plans/" + rec.ID + "/render?format=svg&labels=true")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("<svg")) {
		t.Error("response is not an SVG document")
	}
}

func TestRenderPlanSingleFloor(t *testing.T) {
	ts := testServer(t)
	rec := createPlan(t, ts)

	resp, err := http.Get(ts.URL + "/api/plans/" + rec.ID + "/render?format=dot&floor=1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("digraph plan")) {
		t.Error("response is not a DOT document")
	}
}

func TestRenderPlanBadParams(t *testing.T) {
	ts := testServer(t)
	rec := createPlan(t, ts)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"bad format", "format=gif", http.StatusBadRequest},
		{"bad style", "style=neon", http.StatusBadRequest},
		{"bad scale", "scale=-2", http.StatusBadRequest},
		{"bad floor", "floor=abc", http.StatusBadRequest},
		{"missing floor", "floor=42", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			url := fmt.Sprintf("%s/api/plans/%s/render?%s", ts.URL, rec.ID, tc.query)
			resp, err := http.Get(url)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
