package httpapi

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/vijay-prabhu/foerdercheck/internal/advisor"
	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/config"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/metrics"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
	"github.com/vijay-prabhu/foerdercheck/internal/ranking"
)

const renterProfile = `{"age":34,"lebenssituation":{"kinder_anzahl":1,"haushaltsmitglieder_anzahl":2,` +
	`"monatliches_nettoeinkommen":1700,"wohnart":"miete","monatliche_miete_kalt":600}}`

func newServer(t *testing.T, opts ...Option) (*Server, *prometheus.Registry) {
	t.Helper()
	src, err := catalog.SeedSource()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	a := advisor.New(src,
		eligibility.NewEvaluator(eligibility.WithMetrics(m)),
		ranking.New(config.Default().Ranking),
		advisor.WithMetrics(m),
	)
	return New(a, opts...), reg
}

func do(s *Server, method, uri, body string) *fasthttp.Response {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.Handler(&ctx)

	resp := &fasthttp.Response{}
	ctx.Response.CopyTo(resp)
	return resp
}

func decodeError(t *testing.T, resp *fasthttp.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &e))
	return e
}

func TestHealthz(t *testing.T) {
	s, _ := newServer(t)
	resp := do(s, fasthttp.MethodGet, "/healthz", "")
	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body()))
}

func TestHealthz_Failing(t *testing.T) {
	s, _ := newServer(t)
	s = New(s.advisor, WithHealthCheck(func(context.Context) error {
		return errors.New("database is locked")
	}))

	resp := do(s, fasthttp.MethodGet, "/healthz", "")
	assert.Equal(t, fasthttp.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, "unhealthy", decodeError(t, resp).Message)
}

func TestEvaluate(t *testing.T) {
	s, _ := newServer(t)

	resp := do(s, fasthttp.MethodPost, "/v1/evaluate", `{"program_id":"wohngeld","profile":`+renterProfile+`}`)
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/json", string(resp.Header.ContentType()))

	var result eligibility.ProgramResult
	require.NoError(t, json.Unmarshal(resp.Body(), &result))
	assert.Equal(t, eligibility.Eligible, result.Verdict.Eligible)
	assert.Equal(t, 1.0, result.Verdict.Confidence)
}

func TestEvaluate_Errors(t *testing.T) {
	s, _ := newServer(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"invalid body", fasthttp.MethodPost, `{`, fasthttp.StatusBadRequest},
		{"missing program", fasthttp.MethodPost, `{"profile":{}}`, fasthttp.StatusBadRequest},
		{"unknown program", fasthttp.MethodPost, `{"program_id":"unbekannt"}`, fasthttp.StatusNotFound},
		{"wrong method", fasthttp.MethodGet, "", fasthttp.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(s, tt.method, "/v1/evaluate", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode())
			assert.Equal(t, tt.status, decodeError(t, resp).Status)
		})
	}
}

func TestEvaluateAll(t *testing.T) {
	s, _ := newServer(t)

	resp := do(s, fasthttp.MethodPost, "/v1/evaluate-all", `{"profile":`+renterProfile+`,"status":"ineligible"}`)
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())

	var body EvaluateAllResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.Equal(t, 5, body.Stats.Total)
	require.NotEmpty(t, body.Results)
	for _, r := range body.Results {
		assert.Equal(t, eligibility.Ineligible, r.Verdict.Eligible)
	}

	resp = do(s, fasthttp.MethodPost, "/v1/evaluate-all", `{"status":"maybe"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, resp.StatusCode())
}

func TestRecommend(t *testing.T) {
	s, _ := newServer(t)

	resp := do(s, fasthttp.MethodPost, "/v1/recommend", `{"profile":`+renterProfile+`,"max_results":1}`)
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())

	var recs []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body(), &recs))
	assert.Len(t, recs, 1)
}

func TestPrograms(t *testing.T) {
	s, _ := newServer(t)

	resp := do(s, fasthttp.MethodGet, "/v1/programs?category=Familie%20%26%20Kinder", "")
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())

	var programs []program.Program
	require.NoError(t, json.Unmarshal(resp.Body(), &programs))
	require.Len(t, programs, 2)
	for _, p := range programs {
		assert.Equal(t, program.CategoryFamily, p.Category)
	}

	resp = do(s, fasthttp.MethodGet, "/v1/programs/bafoeg", "")
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	var p program.Program
	require.NoError(t, json.Unmarshal(resp.Body(), &p))
	assert.Equal(t, "bafoeg", p.ID)

	resp = do(s, fasthttp.MethodGet, "/v1/programs/unbekannt", "")
	assert.Equal(t, fasthttp.StatusNotFound, resp.StatusCode())
}

func TestNotFound(t *testing.T) {
	s, _ := newServer(t)
	resp := do(s, fasthttp.MethodGet, "/metrics", "")
	assert.Equal(t, fasthttp.StatusNotFound, resp.StatusCode())
}

func TestMetrics(t *testing.T) {
	s, reg := newServer(t)
	s = New(s.advisor, WithMetrics(reg))

	do(s, fasthttp.MethodPost, "/v1/recommend", `{"profile":`+renterProfile+`}`)

	resp := do(s, fasthttp.MethodGet, "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "foerdercheck_recommendations_total")
}
