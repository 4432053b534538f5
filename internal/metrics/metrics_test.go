package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// gatherMetricNames はレジストリから収集したメトリクス名の集合を返す。
func gatherMetricNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

// TestNewCollector_RegistersMetrics は全メトリクスがレジストリに
// 登録されることを検証する。
func TestNewCollector_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// カウンターは記録されるまでGatherに現れないため1回ずつ記録する
	c.RecordHTTPStatus(200)
	c.RecordHTTPDuration(10 * time.Millisecond)
	c.RecordSignup()
	c.RecordTodoCreated()

	names := gatherMetricNames(t, reg)
	want := []string{
		"todolist_http_status_total",
		"todolist_http_request_duration_seconds",
		"todolist_signups_total",
		"todolist_todos_created_total",
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("metric %s should be registered, got %v", name, names)
		}
	}
}

// TestCollector_CountsByStatusCode はステータスコード別に
// カウントされることを検証する。
func TestCollector_CountsByStatusCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}

	counts := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "todolist_http_status_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status_code" {
					counts[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	if counts["200"] != 2 {
		t.Errorf("count for 200 = %v, want 2", counts["200"])
	}
	if counts["404"] != 1 {
		t.Errorf("count for 404 = %v, want 1", counts["404"])
	}
}

// TestHandler_ServesPrometheusFormat はスクレイプ用ハンドラーが
// テキスト形式でメトリクスを返すことを検証する。
func TestHandler_ServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSignup()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "todolist_signups_total 1") {
		t.Errorf("metrics output should contain signup counter, got:\n%s", rec.Body.String())
	}
}
