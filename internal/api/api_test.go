package api_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/edgepuzzle/internal/api"
	"github.com/mcoot/edgepuzzle/internal/api/apierr"
	"github.com/mcoot/edgepuzzle/internal/api/response"
	"github.com/mcoot/edgepuzzle/internal/factory"
	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/services/puzzle"
	"github.com/mcoot/edgepuzzle/internal/testutil"
)

// testServer wires the router to an app with mocked clock and random
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		PuzzleController: app.PuzzleController,
		HubManager:       app.HubManager,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createSolvable creates a 2x2 puzzle whose catalog order is a solution
func (ts *testServer) createSolvable(t *testing.T, id string) response.Puzzle {
	t.Helper()
	ts.app.MockRandom.QueueString(id)

	var pieces [][4]int
	for _, spec := range testutil.SolvableSpecs() {
		var sides [4]int
		for d, side := range spec {
			sides[d] = int(side)
		}
		pieces = append(pieces, sides)
	}

	rr := ts.request(http.MethodPost, "/api/v1/puzzles", map[string]any{
		"width":  2,
		"height": 2,
		"pieces": pieces,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodePuzzle(t, rr)
}

func decodePuzzle(t *testing.T, rr *httptest.ResponseRecorder) response.Puzzle {
	t.Helper()
	var p response.Puzzle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func assertAPIError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rr.Code, rr.Body.String())
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, code, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Message)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCreatePuzzle_Defaults(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("default001")

	rr := ts.request(http.MethodPost, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "/api/v1/puzzles/default001", rr.Header().Get("Location"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	p := decodePuzzle(t, rr)
	assert.Equal(t, "default001", p.ID)
	assert.Equal(t, string(model.PuzzleStateInProgress), p.State)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, 3, p.Height)
	assert.Len(t, p.Pieces, 9)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, p.Bank)
	assert.Equal(t, [][]int{{-1, -1, -1}, {-1, -1, -1}, {-1, -1, -1}}, p.Cells)
	assert.Nil(t, p.LastSolve)
	assert.Equal(t, ts.app.MockClock.Now(), p.CreatedAt.UTC())
}

func TestCreatePuzzle_Randomized(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("shuffled01")
	// Every slot takes the first remaining piece, so the bank reverses
	ts.app.MockRandom.QueueIntn(0, 0, 0, 0, 0, 0, 0, 0, 0)

	rr := ts.request(http.MethodPost, "/api/v1/puzzles", map[string]any{"randomize": true})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	p := decodePuzzle(t, rr)
	assert.Equal(t, []int{8, 7, 6, 5, 4, 3, 2, 1, 0}, p.Bank)
}

func TestCreatePuzzle_InvalidRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"malformed json", "{", http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"unknown field", map[string]any{"colour": "red"}, http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"zero width", map[string]any{"width": 0, "height": 2}, http.StatusBadRequest, apierr.CodeInvalidPuzzle},
		{"bad side", map[string]any{"width": 1, "height": 1, "pieces": [][4]int{{1, 2, 3, 9}}}, http.StatusBadRequest, apierr.CodeInvalidPuzzle},
		{"empty catalog", map[string]any{"width": 1, "height": 1, "pieces": [][4]int{}}, http.StatusBadRequest, apierr.CodeInvalidPuzzle},
		{"too many pieces", map[string]any{"width": 1, "height": 1, "pieces": [][4]int{{1, 1, 1, 1}, {1, 1, 1, 1}}}, http.StatusBadRequest, apierr.CodeInvalidPuzzle},
		{"grid over cell limit", map[string]any{"width": 2000, "height": 2000}, http.StatusBadRequest, apierr.CodeInvalidPuzzle},
		{"catalog over piece limit", map[string]any{"width": 4, "height": 3, "pieces": slices.Repeat([][4]int{{1, 1, 1, 1}}, puzzle.MaxPieces+1)}, http.StatusBadRequest, apierr.CodeInvalidPuzzle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/puzzles", tt.body)
			assertAPIError(t, rr, tt.status, tt.code)
		})
	}
}

func TestGetPuzzle(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSolvable(t, "getpuzzle1")

	rr := ts.request(http.MethodGet, "/api/v1/puzzles/getpuzzle1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decodePuzzle(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/puzzles/nosuchthing", nil)
	assertAPIError(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
}

func TestListPuzzles(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"puzzles":[]}`, rr.Body.String())

	ts.createSolvable(t, "listfirst1")
	ts.app.MockClock.Advance(time.Second)
	ts.createSolvable(t, "listsecond")

	rr = ts.request(http.MethodGet, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list response.PuzzleList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Puzzles, 2)
	assert.Equal(t, "listfirst1", list.Puzzles[0].ID)
	assert.Equal(t, "listsecond", list.Puzzles[1].ID)
}

func TestPlaceAndRemove(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "placement1")
	base := "/api/v1/puzzles/placement1"

	rr := ts.request(http.MethodPost, base+"/place", map[string]int{"slot": 0, "x": 0, "y": 0})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	p := decodePuzzle(t, rr)
	assert.Equal(t, 0, p.Cells[0][0])
	assert.Equal(t, []int{-1, 1, 2, 3}, p.Bank)

	rr = ts.request(http.MethodPost, base+"/remove", map[string]int{"x": 0, "y": 0})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	p = decodePuzzle(t, rr)
	assert.Equal(t, -1, p.Cells[0][0])
	assert.Equal(t, []int{0, 1, 2, 3}, p.Bank)
}

func TestPlace_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "placeerrs1")
	base := "/api/v1/puzzles/placeerrs1"

	rr := ts.request(http.MethodPost, base+"/place", map[string]int{"slot": 0, "x": 0, "y": 0})
	require.Equal(t, http.StatusOK, rr.Code)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"clashing edge", map[string]int{"slot": 2, "x": 1, "y": 0}, http.StatusConflict, apierr.CodeIllegalPlacement},
		{"occupied cell", map[string]int{"slot": 1, "x": 0, "y": 0}, http.StatusConflict, apierr.CodeIllegalPlacement},
		{"off grid", map[string]int{"slot": 1, "x": 2, "y": 0}, http.StatusBadRequest, apierr.CodeInvalidPosition},
		{"slot out of range", map[string]int{"slot": 4, "x": 1, "y": 0}, http.StatusBadRequest, apierr.CodeInvalidSlot},
		{"empty slot", map[string]int{"slot": 0, "x": 1, "y": 0}, http.StatusConflict, apierr.CodeEmptySlot},
		{"missing body", nil, http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, base+"/place", tt.body)
			assertAPIError(t, rr, tt.status, tt.code)
		})
	}

	rr = ts.request(http.MethodPost, "/api/v1/puzzles/missing/place", map[string]int{"slot": 0})
	assertAPIError(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
}

func TestRemove_EmptyCell(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "removeerr1")

	rr := ts.request(http.MethodPost, "/api/v1/puzzles/removeerr1/remove", map[string]int{"x": 1, "y": 1})
	assertAPIError(t, rr, http.StatusConflict, apierr.CodeCellEmpty)

	rr = ts.request(http.MethodPost, "/api/v1/puzzles/removeerr1/remove", map[string]int{"x": -1, "y": 0})
	assertAPIError(t, rr, http.StatusBadRequest, apierr.CodeInvalidPosition)
}

func TestRotate(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "rotation01")
	base := "/api/v1/puzzles/rotation01/rotate"

	rr := ts.request(http.MethodPost, base, map[string]any{"slot": 1})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	p := decodePuzzle(t, rr)
	assert.Equal(t, 90, p.Pieces[1].Rotation)
	// [C+ H+ S+ D-] turned once brings west to north
	assert.Equal(t, [4]int{-2, 1, 3, 4}, p.Pieces[1].Facing)
	assert.Equal(t, [4]int{1, 3, 4, -2}, p.Pieces[1].Sides)

	rr = ts.request(http.MethodPost, base, map[string]any{"slot": 1, "direction": "ccw"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodePuzzle(t, rr).Pieces[1].Rotation)

	rr = ts.request(http.MethodPost, base, map[string]any{"slot": 1, "direction": "ccw"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 270, decodePuzzle(t, rr).Pieces[1].Rotation)

	rr = ts.request(http.MethodPost, base, map[string]any{"slot": 1, "direction": "sideways"})
	assertAPIError(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestReturnAndRandomize(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "shuffling1")
	base := "/api/v1/puzzles/shuffling1"

	for slot, pos := range []struct{ x, y int }{{0, 0}, {1, 0}} {
		rr := ts.request(http.MethodPost, base+"/place", map[string]int{"slot": slot, "x": pos.x, "y": pos.y})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := ts.request(http.MethodPost, base+"/return", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	p := decodePuzzle(t, rr)
	assert.Equal(t, []int{0, 1, 2, 3}, p.Bank)
	assert.Equal(t, [][]int{{-1, -1}, {-1, -1}}, p.Cells)

	ts.app.MockRandom.QueueIntn(1, 0, 1, 0, 2, 0, 0, 0)
	rr = ts.request(http.MethodPost, base+"/randomize", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	p = decodePuzzle(t, rr)
	// remaining [0 1 2 3]: slot 3 <- 1, slot 2 <- 0, slot 1 <- 3, slot 0 <- 2
	assert.Equal(t, []int{2, 3, 0, 1}, p.Bank)
	assert.Equal(t, 180, p.Pieces[2].Rotation)
}

func TestSolve(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "solveable1")
	ts.app.MockClock.SinceResult = 12 * time.Millisecond

	rr := ts.request(http.MethodPost, "/api/v1/puzzles/solveable1/solve", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.SolveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Solved)
	assert.Equal(t, string(model.PuzzleStateComplete), resp.Puzzle.State)
	assert.Equal(t, []int{-1, -1, -1, -1}, resp.Puzzle.Bank)
	require.NotNil(t, resp.Puzzle.LastSolve)
	assert.True(t, resp.Puzzle.LastSolve.Solved)
	assert.Equal(t, 1, resp.Puzzle.LastSolve.Permutations)
	assert.EqualValues(t, 12, resp.Puzzle.LastSolve.DurationMS)
}

func TestSolve_Unsolvable(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("nosolution")

	rr := ts.request(http.MethodPost, "/api/v1/puzzles", map[string]any{
		"width":  2,
		"height": 2,
		"pieces": [][4]int{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/puzzles/nosolution/solve", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SolveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Solved)
	assert.Equal(t, string(model.PuzzleStateInProgress), resp.Puzzle.State)
	assert.Equal(t, []int{0, 1, 2, 3}, resp.Puzzle.Bank)
	require.NotNil(t, resp.Puzzle.LastSolve)
	assert.Equal(t, 24, resp.Puzzle.LastSolve.Permutations)
}

func TestDeletePuzzle(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "deleteme01")

	rr := ts.request(http.MethodDelete, "/api/v1/puzzles/deleteme01", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = ts.request(http.MethodDelete, "/api/v1/puzzles/deleteme01", nil)
	assertAPIError(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)

	rr = ts.request(http.MethodGet, "/api/v1/puzzles/deleteme01", nil)
	assertAPIError(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "methods001")

	rr := ts.request(http.MethodGet, "/api/v1/puzzles/methods001/solve", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestEvents_UnknownPuzzle(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/puzzles/ghost/events", nil)
	assertAPIError(t, rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
}

// readEvent reads one server-sent event, skipping keepalive comments
func readEvent(t *testing.T, r *bufio.Reader) (name, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "" && name != "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data += strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEvents_StreamsCommands(t *testing.T) {
	ts := newTestServer(t)
	ts.createSolvable(t, "streaming1")

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/api/v1/puzzles/streaming1/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, data := readEvent(t, reader)
	assert.Equal(t, "connected", name)
	assert.JSONEq(t, `{"puzzle_id":"streaming1"}`, data)

	rr := ts.request(http.MethodPost, "/api/v1/puzzles/streaming1/place", map[string]int{"slot": 0, "x": 0, "y": 0})
	require.Equal(t, http.StatusOK, rr.Code)

	name, data = readEvent(t, reader)
	assert.Equal(t, string(model.EventPiecePlaced), name)

	var event response.Event
	require.NoError(t, json.Unmarshal([]byte(data), &event))
	assert.Equal(t, "streaming1", event.PuzzleID)
	assert.Equal(t, string(model.EventPiecePlaced), event.Type)
	assert.EqualValues(t, 0, event.Data["piece_id"])
	assert.EqualValues(t, 0, event.Data["x"])
	assert.EqualValues(t, 0, event.Data["y"])
}
