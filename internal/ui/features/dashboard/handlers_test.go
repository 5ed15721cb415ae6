package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hrdash/internal/testutil"
	"github.com/leapstack-labs/hrdash/internal/ui/features"
	"github.com/leapstack-labs/hrdash/internal/ui/notifier"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(
		fixture.Live,
		fixture.SessionStore,
		fixture.Notifier,
		fixture.Metrics,
		testutil.NewTestLogger(t),
	)
	return handlers, fixture
}

func setupTestServer(t *testing.T) (*httptest.Server, *http.Client, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, fixture.Live, fixture.SessionStore, fixture.Notifier,
		fixture.Metrics, testutil.NewTestLogger(t)))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar, Timeout: 5 * time.Second}, fixture
}

func postFilters(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/filters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ApplyFilters(rec, req)
	return rec
}

// =============================================================================
// DashboardPage Tests
// =============================================================================

func TestDashboardPage(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantBody []string
	}{
		{
			name:   "renders full page with all employees",
			target: "/",
			wantBody: []string{
				"<!doctype html>",
				"<title>Overview - HR Dashboard</title>",
				"data-init",
				"/updates",
				`id="dashboard"`,
				"Showing 6 of 6 employees",
				`<option value="2011">2011</option>`,
				`<option value="All" selected>All</option>`,
				`id="metric-employees"`,
				`id="chart-sex_distribution"`,
				`id="chart-salary_ranges"`,
				"/charts/hires_per_year.svg?",
			},
		},
		{
			name:   "query parameters override the selection",
			target: "/?year=2011",
			wantBody: []string{
				"Showing 3 of 6 employees",
				`<option value="2011" selected>2011</option>`,
				"Year of Hire: 2011 · Employment Status: All · Recruitment Source: All",
				"year=2011",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			h.DashboardPage(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("Set-Cookie"), "session cookie should be set")
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
		})
	}
}

// =============================================================================
// ApplyFilters Tests
// =============================================================================

func TestApplyFilters(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postFilters(t, h, `{"year":"2011","status":"All","source":"LinkedIn"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))

	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "Showing 2 of 6 employees")
	assert.Contains(t, body, `<option value="LinkedIn" selected>LinkedIn</option>`)
}

func TestApplyFilters_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "value outside the options",
			body: `{"year":"1999","status":"All","source":"All"}`,
			want: "unknown Year of Hire &#34;1999&#34;",
		},
		{
			name: "unknown status",
			body: `{"status":"Retired"}`,
			want: "unknown Employment Status &#34;Retired&#34;",
		},
		{
			name: "malformed signals",
			body: `not json`,
			want: "Failed to read filters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			rec := postFilters(t, h, tt.body)

			body := rec.Body.String()
			assert.Contains(t, body, `id="flash"`)
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, "Showing")
			assert.Empty(t, rec.Header().Get("Set-Cookie"), "rejected filters are not saved")
		})
	}
}

func TestApplyFilters_PersistsInSession(t *testing.T) {
	srv, client, _ := setupTestServer(t)

	resp, err := client.Post(srv.URL+"/api/filters", "application/json",
		strings.NewReader(`{"year":"2011","status":"Voluntarily Terminated","source":"All"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	page := readAll(t, resp)
	assert.Contains(t, page, "Showing 2 of 6 employees")
	assert.Contains(t, page, `<option value="Voluntarily Terminated" selected>`)
}

// =============================================================================
// DashboardJSON Tests
// =============================================================================

func TestDashboardJSON(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?year=2011", nil)
	rec := httptest.NewRecorder()
	h.DashboardJSON(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Selection struct {
			Year string `json:"year"`
		} `json:"selection"`
		Matched int `json:"matched_rows"`
		Total   int `json:"total_rows"`
		Summary struct {
			Employees int `json:"employees"`
			Females   int `json:"females"`
		} `json:"summary"`
		Charts []struct {
			Name string `json:"name"`
		} `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "2011", got.Selection.Year)
	assert.Equal(t, 3, got.Matched)
	assert.Equal(t, 6, got.Total)
	assert.Equal(t, 3, got.Summary.Employees)
	assert.Equal(t, 2, got.Summary.Females)
	require.Len(t, got.Charts, 8)
	assert.Equal(t, "sex_distribution", got.Charts[0].Name)
}

// =============================================================================
// ChartSVG Tests
// =============================================================================

func TestChartSVG(t *testing.T) {
	srv, client, _ := setupTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"pie chart", "/charts/sex_distribution.svg", http.StatusOK, "<svg"},
		{"line chart", "/charts/hires_per_year.svg", http.StatusOK, "<svg"},
		{"sized", "/charts/salary_ranges.svg?width=300&height=200", http.StatusOK, `width="300"`},
		{"empty selection draws placeholder", "/charts/race_distribution.svg?source=Referral", http.StatusOK, "No data for the current filters"},
		{"unknown chart", "/charts/headcount.svg", http.StatusNotFound, "unknown chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
			}
			assert.Contains(t, readAll(t, resp), tt.wantBody)
		})
	}
}

func TestChartSize(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/charts/x.svg?width=50&height=9000", nil)
	w, h, ok := chartSize(req)
	require.True(t, ok)
	assert.Equal(t, minChartSide, w)
	assert.Equal(t, maxChartSide, h)

	_, _, ok = chartSize(httptest.NewRequest(http.MethodGet, "/charts/x.svg?width=50", nil))
	assert.False(t, ok)
}

// =============================================================================
// DashboardUpdates Tests - SSE endpoint for live updates only
// =============================================================================

func TestDashboardUpdates_PatchesOnReload(t *testing.T) {
	srv, client, fixture := setupTestServer(t)

	// Choose a selection first so the stream re-renders it.
	resp, err := client.Post(srv.URL+"/api/filters", "application/json", strings.NewReader(`{"year":"2011"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/updates", nil)
	require.NoError(t, err)
	streams := make(chan *http.Response, 1)
	go func() {
		stream, err := client.Do(req)
		if err != nil {
			close(streams)
			return
		}
		streams <- stream
	}()

	require.Eventually(t, func() bool { return fixture.Notifier.Listeners() == 1 },
		2*time.Second, 10*time.Millisecond, "stream should subscribe")

	// Two employees, one hired in 2011.
	lines := strings.SplitN(testutil.SampleCSV, "\n", 4)
	smaller := testutil.WriteFile(t, "smaller.csv", strings.Join(lines[:3], "\n")+"\n")
	version := fixture.Live.Swap(features.LoadRunner(t, smaller))
	fixture.Notifier.Broadcast(notifier.Event{Version: version, Rows: 2})

	stream, ok := <-streams
	require.True(t, ok, "stream request failed")
	defer func() { _ = stream.Body.Close() }()

	found := make(chan bool, 1)
	go func() {
		scanner := bufio.NewScanner(stream.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			if strings.Contains(scanner.Text(), "Showing 1 of 2 employees") {
				found <- true
				return
			}
		}
		found <- false
	}()

	select {
	case ok := <-found:
		assert.True(t, ok, "stream should patch the reloaded dashboard")
	case <-time.After(3 * time.Second):
		t.Fatal("no patch received after broadcast")
	}
}

func TestDashboardUpdates_UnsubscribesOnDisconnect(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/updates", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.DashboardUpdates(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return fixture.Notifier.Listeners() == 1 },
		2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after disconnect")
	}
	assert.Equal(t, 0, fixture.Notifier.Listeners())
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	require.NoError(t, scanner.Err())
	return sb.String()
}
