package bridge

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

// Default mount points used by Handler.
const (
	RunPath       = "/__gas/run"
	WebSocketPath = "/__gas/ws"
)

// Handler returns a mux serving HTTPHandler at RunPath and WebSocketHandler
// at WebSocketPath.
func (d *Dispatcher) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(RunPath, d.HTTPHandler())
	mux.Handle(WebSocketPath, d.WebSocketHandler())
	return mux
}

// HTTPHandler runs one Call per POST request. Failed calls answer with
// status 500 and a Result carrying the error.
func (d *Dispatcher) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var call Call
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			writeResult(w, http.StatusBadRequest, Result{Error: "invalid request body: " + err.Error()})
			return
		}

		res := d.Dispatch(call)
		status := http.StatusOK
		if res.Error != "" {
			status = http.StatusInternalServerError
		}
		writeResult(w, status, res)
	})
}

func writeResult(w http.ResponseWriter, status int, res Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades the connection and answers every Call message
// with a Result message until the client disconnects.
func (d *Dispatcher) WebSocketHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					d.logger.Warn("websocket read failed", "error", err)
				}
				return
			}

			var res Result
			var call Call
			if err := json.Unmarshal(msg, &call); err != nil {
				res = Result{Error: "invalid message: " + err.Error()}
			} else {
				res = d.Dispatch(call)
			}
			if err := conn.WriteJSON(res); err != nil {
				d.logger.Warn("websocket write failed", "error", err)
				return
			}
		}
	})
}
