package arcade

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oiesnake/internal/arcade/viewmodel"
)

func newTestRouter(s *Store) http.Handler {
	h := NewHandler(s, "")
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterSocketRoutes(r)
	return r
}

func TestHandler_Home(t *testing.T) {
	router := newTestRouter(newTestStore(t, time.Hour))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/snakes"`)
}

func TestHandler_CreateRoom(t *testing.T) {
	s := newTestStore(t, time.Hour)
	router := newTestRouter(s)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snakes", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	id := strings.TrimPrefix(rec.Header().Get("Location"), "/snake/")
	defer s.Delete(id)
	_, ok := s.GetRoom(id)
	assert.True(t, ok)
}

func TestHandler_RoomPageAndState(t *testing.T) {
	s := newTestStore(t, time.Hour)
	room := s.CreateRoom()
	defer s.Delete(room.ID)
	router := newTestRouter(s)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snake/"+room.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<canvas id="board" width="288" height="384"`)
	assert.Contains(t, rec.Body.String(), "/snake/"+room.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snake/"+room.ID+"/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var f viewmodel.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, room.ID, f.ID)
	assert.Len(t, f.Body, 3)
	assert.True(t, f.Running)
}

func TestHandler_UnknownRoom(t *testing.T) {
	router := newTestRouter(newTestStore(t, time.Hour))

	for _, path := range []string{"/snake/nope", "/snake/nope/state", "/snake/nope/ws"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snake/nope/stop", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func postDirection(router http.Handler, id, dir string) *httptest.ResponseRecorder {
	form := url.Values{"dir": {dir}}
	req := httptest.NewRequest(http.MethodPost, "/snake/"+id+"/direction", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Direction(t *testing.T) {
	s := newTestStore(t, time.Hour)
	room := s.CreateRoom()
	defer s.Delete(room.ID)
	router := newTestRouter(s)

	rec := postDirection(router, room.ID, "left")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"applied":false}`, rec.Body.String())

	rec = postDirection(router, room.ID, "down")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"applied":true}`, rec.Body.String())
	assert.Equal(t, "down", room.Frame().Direction)

	rec = postDirection(router, room.ID, "sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Stop(t *testing.T) {
	s := newTestStore(t, time.Hour)
	room := s.CreateRoom()
	defer s.Delete(room.ID)
	router := newTestRouter(s)

	req := httptest.NewRequest(http.MethodPost, "/snake/"+room.ID+"/stop", nil)
	req.Header.Set("Hx-Request", "true")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, room.Running())
}

func TestHandler_Socket(t *testing.T) {
	s := newTestStore(t, time.Hour)
	room := s.CreateRoom()
	defer s.Delete(room.ID)
	require.True(t, s.Stop(room.ID))
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/snake/" + room.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var f viewmodel.Frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, room.ID, f.ID)
	assert.Equal(t, "right", f.Direction)

	require.NoError(t, conn.WriteJSON(map[string]string{"dir": "up"}))
	require.Eventually(t, func() bool { return room.Frame().Direction == "up" }, 2*time.Second, 5*time.Millisecond)

	s.Publish(room.ID, FrameEvent)
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "up", f.Direction)
}

func TestHandler_SocketUnknownRoom(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(newTestStore(t, time.Hour)))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/snake/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_RoomExpiresAfterLastViewerLeaves(t *testing.T) {
	s := newIdleTestStore(t, 10*time.Millisecond, 50*time.Millisecond)
	room := s.CreateRoom()
	defer s.Delete(room.ID)
	hub, ok := s.Broadcaster(room.ID)
	require.True(t, ok)
	hold := hub.Subscribe()
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/snake/" + room.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	var f viewmodel.Frame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&f))
	hub.Unsubscribe(hold)

	time.Sleep(150 * time.Millisecond)
	_, ok = s.GetRoom(room.ID)
	require.True(t, ok, "room with a viewer should stay")

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		_, ok := s.GetRoom(room.ID)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}
