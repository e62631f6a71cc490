package arcade

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"oiesnake/internal/arcade/viewmodel"
	"oiesnake/internal/snake"
)

const (
	title     = "Snake"
	writeWait = 2 * time.Second
)

// Handler holds the store and serves HTTP and WebSocket traffic.
type Handler struct {
	store    *Store
	baseURL  string
	upgrader websocket.Upgrader
}

// NewHandler returns a handler for the snake arcade. baseURL, when set,
// prefixes share links.
func NewHandler(store *Store, baseURL string) *Handler {
	return &Handler{
		store:   store,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the page and form routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/snakes", h.createRoom)
	r.Get("/snake/{id}", h.roomPage)
	r.Get("/snake/{id}/state", h.state)
	r.Post("/snake/{id}/direction", h.direction)
	r.Post("/snake/{id}/stop", h.stop)
}

// RegisterSocketRoutes mounts the long-lived WebSocket route. It is kept apart
// so request timeouts can be applied to the other routes only.
func (h *Handler) RegisterSocketRoutes(r chi.Router) {
	r.Get("/snake/{id}/ws", h.socket)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!DOCTYPE html>
<html>
<head><title>Snake</title><link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css"></head>
<body>
<section class="section">
<div class="container">
<h1 class="title">Snake</h1>
<p class="subtitle">Steer with the arrow keys. Eat to grow; hitting a wall or yourself starts you over.</p>
<form method="POST" action="/snakes" class="box">
	<div class="field">
		<div class="control"><button type="submit" class="button is-primary">New snake</button></div>
	</div>
</form>
</div>
</section>
</body>
</html>`
	_, _ = w.Write([]byte(html))
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	room := h.store.CreateRoom()
	http.Redirect(w, r, "/snake/"+room.ID, http.StatusSeeOther)
}

func (h *Handler) roomPage(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	room, ok := h.store.GetRoom(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := viewmodel.RoomPage{
		Title:     title,
		RoomID:    roomID,
		InviteURL: h.buildInviteURL(r, roomID),
		Frame:     room.Frame(),
	}
	renderRoomPage(w, data)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	room, ok := h.store.GetRoom(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, room.Frame())
}

func (h *Handler) direction(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	room, ok := h.store.GetRoom(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	d, ok := snake.ParseDirection(r.FormValue("dir"))
	if !ok {
		http.Error(w, "unknown direction", http.StatusBadRequest)
		return
	}
	applied := room.SetDirection(d)
	log.WithFields(log.Fields{"room": roomID, "dir": d.String(), "applied": applied}).Debug("direction")
	writeJSON(w, map[string]any{"applied": applied})
}

func (h *Handler) stop(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if !h.store.Stop(roomID) {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("Hx-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/snake/"+roomID, http.StatusSeeOther)
}

type clientMessage struct {
	Dir string `json:"dir"`
}

func (h *Handler) socket(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	room, ok := h.store.GetRoom(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	hub, ok := h.store.Broadcaster(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("room", roomID).WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	logger := log.WithField("room", roomID)
	logger.Debug("websocket connected")

	done := make(chan struct{})
	go readDirections(conn, room, logger, done)

	if err := writeFrame(conn, room.Frame()); err != nil {
		return
	}
	for {
		select {
		case <-done:
			logger.Debug("websocket closed")
			return
		case _, open := <-sub:
			if !open {
				return
			}
			if err := writeFrame(conn, room.Frame()); err != nil {
				logger.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}
}

// readDirections consumes client messages until the connection fails, then
// closes done.
func readDirections(conn *websocket.Conn, room *Room, logger *log.Entry, done chan<- struct{}) {
	defer close(done)
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("websocket read failed")
			}
			return
		}
		d, ok := snake.ParseDirection(msg.Dir)
		if !ok {
			logger.WithField("dir", msg.Dir).Debug("ignoring unknown direction")
			continue
		}
		room.SetDirection(d)
	}
}

func writeFrame(conn *websocket.Conn, frame viewmodel.Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(frame)
}

func (h *Handler) buildInviteURL(r *http.Request, roomID string) string {
	if h.baseURL != "" {
		return h.baseURL + "/snake/" + roomID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/snake/" + roomID
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func renderRoomPage(w http.ResponseWriter, data viewmodel.RoomPage) {
	frameJSON, _ := json.Marshal(data.Frame)
	cell := 24

	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html><html><head><title>` + templ.EscapeString(data.Title) + `</title>`)
	buf.WriteString(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css">`)
	buf.WriteString(`</head><body class="section">`)
	buf.WriteString(`<div class="container"><h1 class="title">` + templ.EscapeString(data.Title) + `</h1>`)
	buf.WriteString(`<p class="help">Share: ` + templ.EscapeString(data.InviteURL) + `</p>`)
	buf.WriteString(`<p id="score" class="mb-3">`)
	buf.WriteString(scoreLine(data.Frame))
	buf.WriteString(`</p>`)
	buf.WriteString(`<canvas id="board" width="` + strconv.Itoa(data.Frame.Cols*cell) + `" height="` + strconv.Itoa(data.Frame.Rows*cell) + `" style="border:1px solid #ccc;background:#fafafa"></canvas>`)
	buf.WriteString(`<p class="mt-3"><button type="button" class="button is-danger is-light" id="stop">Stop</button></p>`)
	buf.WriteString(`<script>
(function(){
var rid="` + templ.EscapeString(data.RoomID) + `";
var cell=` + strconv.Itoa(cell) + `;
var frame=` + string(frameJSON) + `;
var ctx=document.getElementById("board").getContext("2d");
function draw(f){
  ctx.clearRect(0,0,f.cols*cell,f.rows*cell);
  ctx.fillStyle="#f14668";
  ctx.fillRect(f.food.x*cell+2,f.food.y*cell+2,cell-4,cell-4);
  ctx.fillStyle="#48c78e";
  f.body.forEach(function(p){ ctx.fillRect(p.x*cell+1,p.y*cell+1,cell-2,cell-2); });
  ctx.fillStyle="#257953";
  ctx.fillRect(f.head.x*cell+1,f.head.y*cell+1,cell-2,cell-2);
  document.getElementById("score").textContent="Score "+f.score+" | ticks "+f.ticks+" | resets "+f.resets+(f.running?"":" | stopped");
}
draw(frame);
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+"/snake/"+rid+"/ws");
ws.onmessage=function(e){ draw(JSON.parse(e.data)); };
var keys={ArrowUp:"up",ArrowDown:"down",ArrowLeft:"left",ArrowRight:"right"};
document.addEventListener("keydown",function(e){
  var dir=keys[e.key];
  if(!dir||ws.readyState!==1) return;
  e.preventDefault();
  ws.send(JSON.stringify({dir:dir}));
});
document.getElementById("stop").addEventListener("click",function(){
  fetch("/snake/"+rid+"/stop",{method:"POST",headers:{"Hx-Request":"true"}});
});
})();
</script>`)
	buf.WriteString(`</div></body></html>`)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func scoreLine(f viewmodel.Frame) string {
	line := "Score " + strconv.Itoa(f.Score) + " | ticks " + strconv.Itoa(f.Ticks) + " | resets " + strconv.Itoa(f.Resets)
	if !f.Running {
		line += " | stopped"
	}
	return line
}
