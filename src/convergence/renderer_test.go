package convergence

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/667r/INF295-Inteligencia-Artificial/src/config"
)

// testConfig points the renderer at a fresh results/graficos pair under a temp dir and
// keeps the raster small so tests stay fast.
func testConfig(t *testing.T, instances ...string) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Instances = instances
	cfg.InputDir = filepath.Join(root, "results")
	cfg.OutputDir = filepath.Join(root, "graficos")
	cfg.DPI = 50
	if err := os.MkdirAll(cfg.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return cfg
}

func writeTable(t *testing.T, cfg config.Config, instance, content string) {
	t.Helper()
	if err := os.WriteFile(cfg.TablePath(instance), []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
}

func runRenderer(t *testing.T, cfg config.Config) (Report, []string) {
	t.Helper()
	var notices bytes.Buffer
	r, err := New(cfg, &notices)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return rep, strings.Split(strings.TrimRight(notices.String(), "\n"), "\n")
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestRun_RendersPresentTable(t *testing.T) {
	cfg := testConfig(t, "a48.txt")
	writeTable(t, cfg, "a48.txt", "Iteracion,Profit\n0,10\n1,15\n2,15\n")

	rep, notices := runRenderer(t, cfg)

	if diff := cmp.Diff([]string{"Generado: a48.png"}, notices); diff != "" {
		t.Fatalf("notices (-want +got):\n%s", diff)
	}
	want := filepath.Join(cfg.OutputDir, "a48.png")
	if rep.Outcomes[0].Status != StatusRendered || rep.Outcomes[0].ImagePath != want {
		t.Fatalf("unexpected outcome: %+v", rep.Outcomes[0])
	}
	f, err := os.Open(want)
	if err != nil {
		t.Fatalf("open chart: %v", err)
	}
	defer f.Close()
	pc, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if pc.Width != 300 || pc.Height != 200 {
		t.Fatalf("chart size = %dx%d, want 300x200", pc.Width, pc.Height)
	}
	if rep.Outcomes[0].Summary.BestProfit != 15 {
		t.Fatalf("summary not recorded: %+v", rep.Outcomes[0].Summary)
	}
}

func TestRun_MissingTableIsSkipped(t *testing.T) {
	cfg := testConfig(t, "c50.txt")

	rep, notices := runRenderer(t, cfg)

	if diff := cmp.Diff([]string{"Falta archivo CSV para: c50.txt. Ejecuta el solver primero."}, notices); diff != "" {
		t.Fatalf("notices (-want +got):\n%s", diff)
	}
	if rep.Count(StatusSkipped) != 1 || rep.Failed() {
		t.Fatalf("unexpected report: %s", rep)
	}
	if got := listDir(t, cfg.OutputDir); len(got) != 0 {
		t.Fatalf("expected empty output dir, got %v", got)
	}
}

func TestRun_MissingColumnFails(t *testing.T) {
	cfg := testConfig(t, "f72.txt")
	writeTable(t, cfg, "f72.txt", "Iteracion,Costo\n0,1\n1,2\n")

	rep, notices := runRenderer(t, cfg)

	if len(notices) != 1 || !strings.HasPrefix(notices[0], "Error en f72.txt: ") {
		t.Fatalf("unexpected notices: %q", notices)
	}
	if !strings.Contains(notices[0], `column "Profit" not found`) {
		t.Fatalf("notice lacks failure description: %q", notices[0])
	}
	if !rep.Failed() || rep.Outcomes[0].Err == nil {
		t.Fatalf("expected failed outcome: %+v", rep.Outcomes[0])
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "f72.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no chart expected for malformed table, stat err=%v", err)
	}
}

func TestRun_MixedBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	cfg := testConfig(t, "eil22.txt", "a48.txt", "c50.txt", "f72.txt", "tai75A.txt")
	writeTable(t, cfg, "eil22.txt", "Iteracion,Profit\n0,100.00\n50,120.50\n")
	writeTable(t, cfg, "a48.txt", "Iteracion,Profit\n0,10\n1,15\n2,15\n")
	writeTable(t, cfg, "f72.txt", "Iteracion,Profit\n0,abc\n")
	writeTable(t, cfg, "tai75A.txt", "Iteracion,Profit\n0,7\n")

	rep, notices := runRenderer(t, cfg)

	if len(notices) != 5 {
		t.Fatalf("want one notice per instance, got %q", notices)
	}
	wantPrefixes := []string{
		"Generado: eil22.png",
		"Generado: a48.png",
		"Falta archivo CSV para: c50.txt.",
		"Error en f72.txt: ",
		"Generado: tai75A.png",
	}
	for i, p := range wantPrefixes {
		if !strings.HasPrefix(notices[i], p) {
			t.Errorf("notice %d = %q, want prefix %q", i, notices[i], p)
		}
	}
	var statuses []Status
	for _, o := range rep.Outcomes {
		statuses = append(statuses, o.Status)
	}
	want := []Status{StatusRendered, StatusRendered, StatusSkipped, StatusFailed, StatusRendered}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Fatalf("statuses (-want +got):\n%s", diff)
	}
	charts := listDir(t, cfg.OutputDir)
	if diff := cmp.Diff([]string{"a48.png", "eil22.png", "tai75A.png"}, charts); diff != "" {
		t.Fatalf("charts (-want +got):\n%s", diff)
	}
	if len(charts) > len(cfg.Instances) {
		t.Fatalf("more charts than instances")
	}
}

func TestRun_RerunOverwritesWithoutStaleFiles(t *testing.T) {
	cfg := testConfig(t, "a48.txt", "c50.txt")
	writeTable(t, cfg, "a48.txt", "Iteracion,Profit\n0,10\n1,15\n")
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	unrelated := filepath.Join(cfg.OutputDir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	chart := filepath.Join(cfg.OutputDir, "a48.png")
	if err := os.WriteFile(chart, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	runRenderer(t, cfg)
	first := listDir(t, cfg.OutputDir)
	runRenderer(t, cfg)
	second := listDir(t, cfg.OutputDir)

	if diff := cmp.Diff([]string{"a48.png", "notes.txt"}, second); diff != "" {
		t.Fatalf("output dir (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second run changed the file set:\n%s", diff)
	}
	data, err := os.ReadFile(chart)
	if err != nil || bytes.Equal(data, []byte("stale")) {
		t.Fatalf("chart was not overwritten (err=%v)", err)
	}
	if kept, _ := os.ReadFile(unrelated); string(kept) != "keep me" {
		t.Fatalf("unrelated file altered: %q", kept)
	}
}

func TestRun_SVGFormat(t *testing.T) {
	cfg := testConfig(t, "a48.txt")
	cfg.ImageFormat = config.FormatSVG
	writeTable(t, cfg, "a48.txt", "Iteracion,Profit\n0,10\n1,15\n")

	_, notices := runRenderer(t, cfg)

	if diff := cmp.Diff([]string{"Generado: a48.svg"}, notices); diff != "" {
		t.Fatalf("notices (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "a48.svg"))
	if err != nil || !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("expected svg output (err=%v)", err)
	}
}

func TestRun_TableIsDirectory(t *testing.T) {
	cfg := testConfig(t, "a48.txt")
	if err := os.Mkdir(cfg.TablePath("a48.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	rep, notices := runRenderer(t, cfg)
	if rep.Outcomes[0].Status != StatusFailed || !strings.Contains(notices[0], "is a directory") {
		t.Fatalf("unexpected outcome %+v / %q", rep.Outcomes[0], notices)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := testConfig(t, "a48.txt")
	writeTable(t, cfg, "a48.txt", "Iteracion,Profit\n0,10\n")
	r, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rep.Outcomes) != 0 {
		t.Fatalf("no instance should run after cancellation: %+v", rep.Outcomes)
	}
}

func TestRun_OutputDirUnusable(t *testing.T) {
	cfg := testConfig(t, "a48.txt")
	if err := os.WriteFile(cfg.OutputDir, []byte("file"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "create output dir") {
		t.Fatalf("expected output dir error, got %v", err)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Instances = nil
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestStatusString(t *testing.T) {
	got := []string{StatusRendered.String(), StatusSkipped.String(), StatusFailed.String(), StatusRead.String(), Status(9).String()}
	if diff := cmp.Diff([]string{"rendered", "skipped", "failed", "read", "Status(9)"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
