//go:build e2e

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var teapaBin string

const campaignGraph = `{
  "nodes": [
    {"id": "ana", "label": "Ana Pérez", "type": "persona", "party": "Morena", "tags": ["regidora"], "notes": "Cabildo"},
    {"id": "beto", "label": "Beto", "type": "persona", "party": "PRI"},
    {"id": "c1", "label": "Contrato de obra", "type": "contrato"},
    {"id": "solo", "label": "Sin vínculos"}
  ],
  "links": [
    {"source": "ana", "target": "beto", "type": "alianza"},
    {"source": "beto", "target": "c1", "type": "negocio", "weight": 3}
  ]
}`

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "teapa-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}
	defer os.RemoveAll(tmp)

	teapaBin = filepath.Join(tmp, "teapa")
	build := exec.Command("go", "build", "-ldflags", "-X github.com/unknownshopper/teapaparalosteapanecos/cmd.version=9.9.0-test", "-o", teapaBin, ".")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("failed to build teapa: " + err.Error())
	}

	os.Exit(m.Run())
}

// runTeapa executes the binary with an isolated config directory.
func runTeapa(t *testing.T, stdin string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(teapaBin, args...)
	home := t.TempDir()
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"NO_COLOR=1",
	)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run teapa %v: %v", args, err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

func writeGraph(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestE2E_Version(t *testing.T) {
	out, _, code := runTeapa(t, "", "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "9.9.0") {
		t.Errorf("expected version 9.9.0, got %q", out)
	}
}

func TestE2E_Help(t *testing.T) {
	out, _, code := runTeapa(t, "", "--help")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, sub := range []string{"validate", "inspect", "filter", "layout", "detail", "explore", "config"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help should list %q", sub)
		}
	}
}

func TestE2E_Validate(t *testing.T) {
	good := writeGraph(t, "good.json", campaignGraph)
	out, _, code := runTeapa(t, "", "validate", good)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out)
	}
	if !strings.Contains(out, "4 nodes, 2 links") {
		t.Errorf("expected stats in output, got %q", out)
	}

	bad := writeGraph(t, "bad.json", `{"nodes":[{"id":"a"},{"id":"a"}],"links":[]}`)
	out, _, code = runTeapa(t, "", "validate", good, bad)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "duplicate node id") {
		t.Errorf("expected duplicate id error, got %q", out)
	}
}

func TestE2E_Filter(t *testing.T) {
	p := writeGraph(t, "g.json", campaignGraph)
	out, _, code := runTeapa(t, "", "filter", p, "--type", "NEGOCIO")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var snap struct {
		ID    string `json:"id"`
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("filter output is not JSON: %v\n%s", err, out)
	}
	if snap.ID == "" || len(snap.Nodes) != 2 || len(snap.Links) != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	out, _, _ = runTeapa(t, "", "filter", p, "--query", "perez", "--ids")
	if strings.TrimSpace(out) != "ana" {
		t.Errorf("expected only ana, got %q", out)
	}
}

func TestE2E_FilterStdinYAML(t *testing.T) {
	out, _, code := runTeapa(t, "nodes:\n  - id: x\nlinks: []\n", "filter", "-", "--format", "yaml", "--ids", "--query", "x")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "x" {
		t.Errorf("expected x, got %q", out)
	}
}

func TestE2E_Layout(t *testing.T) {
	p := writeGraph(t, "g.json", campaignGraph)
	svgPath := filepath.Join(t.TempDir(), "g.svg")
	_, _, code := runTeapa(t, "", "layout", p, "--out", svgPath, "--seed", "42", "--select", "ana")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "<circle") != 3 {
		t.Errorf("expected 3 circles (isolated node hidden), got:\n%s", data)
	}

	out, _, code := runTeapa(t, "", "layout", p, "-o", "json", "--seed", "42")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var nodes []struct {
		ID string  `json:"id"`
		X  float64 `json:"x"`
		Y  float64 `json:"y"`
	}
	if err := json.Unmarshal([]byte(out), &nodes); err != nil || len(nodes) != 3 {
		t.Errorf("unexpected json layout: %v\n%s", err, out)
	}
}

func TestE2E_Detail(t *testing.T) {
	p := writeGraph(t, "g.json", campaignGraph)
	out, _, code := runTeapa(t, "", "detail", p, "ana")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"Nombre: Ana Pérez", "Tipo: persona", "Partido: Morena", "Tags: regidora", "Notas: Cabildo"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}

	out, _, _ = runTeapa(t, "", "detail", p)
	if !strings.Contains(out, "Selecciona un nodo") {
		t.Errorf("expected placeholder, got %q", out)
	}

	_, _, code = runTeapa(t, "", "detail", p, "ghost")
	if code != 1 {
		t.Errorf("expected exit 1 for unknown id, got %d", code)
	}
}

func TestE2E_Explore(t *testing.T) {
	p := writeGraph(t, "g.json", campaignGraph)
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "live.svg")
	saved := filepath.Join(dir, "saved.dot")

	script := strings.Join([]string{
		"types",
		"select beto",
		"detail",
		"type negocio",
		"grab c1",
		"move 300 200",
		"up",
		"save " + saved,
		"quit",
	}, "\n") + "\n"

	out, _, code := runTeapa(t, script, "explore", p, "--out", svgPath)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out)
	}
	if !strings.Contains(out, "  alianza\n  negocio\n") {
		t.Errorf("expected link type list, got %q", out)
	}
	if !strings.Contains(out, "Nombre: Beto") {
		t.Errorf("expected detail for beto, got %q", out)
	}
	dot, err := os.ReadFile(saved)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), `"beto" -> "c1"`) || strings.Contains(string(dot), `"ana"`) {
		t.Errorf("unexpected saved frame:\n%s", dot)
	}
}

func TestE2E_Config(t *testing.T) {
	out, _, code := runTeapa(t, "", "config")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "link_distance = 80.0") {
		t.Errorf("expected default link distance, got %q", out)
	}

	cfgFile := writeGraph(t, "bad.toml", "[viewport]\nmin_scale = 0\n")
	_, _, code = runTeapa(t, "", "--config", cfgFile, "config")
	if code != 1 {
		t.Errorf("expected exit 1 for invalid config, got %d", code)
	}
}
