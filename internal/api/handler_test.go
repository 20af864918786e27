package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TigerCipher/rrsched/internal/config"
	"github.com/TigerCipher/rrsched/internal/dispatcher"
)

type response struct {
	RunID                 string                     `json:"run_id"`
	Quantum               int                        `json:"quantum"`
	AverageTurnaroundTime float64                    `json:"average_turnaround_time"`
	AverageWaitTime       float64                    `json:"average_wait_time"`
	Processes             []dispatcher.ProcessResult `json:"processes"`
	Gantt                 []dispatcher.TimeSlice     `json:"gantt"`
	Error                 string                     `json:"error"`
}

func post(t *testing.T, app *fiber.App, body string) (int, response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rr", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out response
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return resp.StatusCode, out
}

func TestRoundRobin(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	body := `{"processes":[
		{"id":0,"arrival":0,"burst":10,"priority":2},
		{"id":1,"arrival":1,"burst":6,"priority":5},
		{"id":2,"arrival":3,"burst":2,"priority":3},
		{"id":3,"arrival":5,"burst":4,"priority":1}]}`

	status, out := post(t, app, body)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, 2, out.Quantum)
	assert.Equal(t, 13.75, out.AverageTurnaroundTime)
	assert.Equal(t, 8.25, out.AverageWaitTime)
	require.Len(t, out.Processes, 4)
	assert.Equal(t, 22, out.Processes[0].Exit)
	assert.Len(t, out.Gantt, 11)
}

func TestRoundRobin_Options(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MinimizeChart = true
	app := NewApp(cfg)

	status, out := post(t, app, `{"quantum":3,"processes":[{"arrival":0,"burst":9}]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, out.Quantum)
	assert.Equal(t, []dispatcher.TimeSlice{{PID: 0, Start: 0, Stop: 9}}, out.Gantt)

	status, out = post(t, app, `{"minimize_chart":false,"processes":[{"arrival":0,"burst":4}]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out.Gantt, 2)
}

func TestRoundRobin_BadRequests(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	tests := map[string]string{
		"malformed":      `{"processes":`,
		"no processes":   `{"processes":[]}`,
		"bad quantum":    `{"quantum":-1,"processes":[{"arrival":0,"burst":1}]}`,
		"negative burst": `{"processes":[{"arrival":0,"burst":-1}]}`,
		"duplicate id":   `{"processes":[{"id":1,"burst":1},{"id":1,"burst":2}]}`,
		"clock overflow": `{"quantum":5,"processes":[{"arrival":9223372036854775806,"burst":5}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			status, out := post(t, app, body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestRoundRobin_SliceLimit(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	status, out := post(t, app, `{"quantum":1,"processes":[{"arrival":0,"burst":20000000}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, out.Error, "slice limit")

	cfg := config.DefaultConfig()
	cfg.MaxSlices = 3
	app = NewApp(cfg)
	status, _ = post(t, app, `{"quantum":2,"processes":[{"arrival":0,"burst":6}]}`)
	assert.Equal(t, http.StatusOK, status)
	status, _ = post(t, app, `{"quantum":2,"processes":[{"arrival":0,"burst":7}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealth(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
