package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver/sqlite"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/env"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *sheetdb.Client) {
	t.Helper()
	d, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("sqlite.Open failed: %v", err)
	}
	c := sheetdb.New(d, sheetdb.DefaultOptions())
	t.Cleanup(func() { c.Close() })

	disp := NewDispatcher()
	RegisterClient(disp, c)
	RegisterEnv(disp, env.NewProperties(map[string]string{"SSID": "DEV_SHEET_ID"}), env.Session{Email: "dev-user@example.com", TimeZone: "UTC"})
	return disp, c
}

func call(fn string, args ...any) Call {
	c := Call{Function: fn}
	for _, a := range args {
		raw, _ := json.Marshal(a)
		c.Args = append(c.Args, raw)
	}
	return c
}

func mustDispatch(t *testing.T, d *Dispatcher, c Call) any {
	t.Helper()
	res := d.Dispatch(c)
	if res.Error != "" {
		t.Fatalf("%s failed: %s", c.Function, res.Error)
	}
	return res.Data
}

func TestDispatchSheetFunctions(t *testing.T) {
	d, c := newTestDispatcher(t)

	mustDispatch(t, d, call("insertSheet", "2026_02"))
	mustDispatch(t, d, call("setValues", "2026_02!A1:B2", [][]any{{"SeatNo", "Name"}, {1, "Alice"}}))
	mustDispatch(t, d, call("appendRow", "2026_02", []any{2, "Bob"}))
	mustDispatch(t, d, call("setValue", "'2026_02'!C1", true))

	got := mustDispatch(t, d, call("getValues", "2026_02!A1:C3"))
	expected := [][]any{
		{"SeatNo", "Name", true},
		{int64(1), "Alice", ""},
		{int64(2), "Bob", ""},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("getValues = %v, expected %v", got, expected)
	}
	if n := mustDispatch(t, d, call("getLastRow", "2026_02")); n != 3 {
		t.Errorf("getLastRow = %v, expected 3", n)
	}
	if n := mustDispatch(t, d, call("getLastColumn", "2026_02")); n != 3 {
		t.Errorf("getLastColumn = %v, expected 3", n)
	}

	mustDispatch(t, d, call("clearRange", "2026_02!A3:B3"))
	if n := mustDispatch(t, d, call("getLastRow", "2026_02")); n != 2 {
		t.Errorf("getLastRow after clear = %v, expected 2", n)
	}

	mustDispatch(t, d, call("insertSheet", "Front", 1))
	names := mustDispatch(t, d, call("getSheetNames"))
	if !slices.Equal(names.([]string), []string{"Front", "2026_02"}) {
		t.Errorf("getSheetNames = %v", names)
	}

	mustDispatch(t, d, call("deleteSheet", "2026_02"))
	mustDispatch(t, d, call("deleteSheet", "2026_02"))
	if n, _ := c.SheetCount(); n != 1 {
		t.Errorf("SheetCount = %d, expected 1", n)
	}
}

func TestDispatchErrors(t *testing.T) {
	d, _ := newTestDispatcher(t)
	mustDispatch(t, d, call("insertSheet", "S"))

	tests := []struct {
		name string
		call Call
		want string
	}{
		{"unknown function", call("noSuchFunction"), "function not found"},
		{"missing argument", call("getValues"), "missing argument 1"},
		{"bad notation", call("getValues", "S!A1:B2:C3"), "invalid range notation"},
		{"missing sheet", call("getLastRow", "Nope"), "sheet not found"},
		{"dimension mismatch", call("setValues", "S!A1:B2", [][]any{{1}}), "does not match"},
		{"not a grid", call("setValues", "S!A1", "x"), "expected an array of rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Dispatch(tt.call)
			if !strings.Contains(res.Error, tt.want) {
				t.Errorf("Error = %q, expected it to contain %q", res.Error, tt.want)
			}
			if res.Data != nil {
				t.Errorf("Data = %v on error", res.Data)
			}
		})
	}
}

func TestDispatchEnvFunctions(t *testing.T) {
	d, _ := newTestDispatcher(t)

	if v := mustDispatch(t, d, call("getProperty", "SSID")); v != "DEV_SHEET_ID" {
		t.Errorf("getProperty(SSID) = %v", v)
	}
	if v := mustDispatch(t, d, call("getProperty", "MISSING")); v != nil {
		t.Errorf("getProperty(MISSING) = %v, expected nil", v)
	}
	mustDispatch(t, d, call("setProperty", "K", "V"))
	mustDispatch(t, d, call("setProperties", map[string]string{"A": "1"}))
	mustDispatch(t, d, call("deleteProperty", "SSID"))
	all := mustDispatch(t, d, call("getProperties"))
	if !reflect.DeepEqual(all, map[string]string{"K": "V", "A": "1"}) {
		t.Errorf("getProperties = %v", all)
	}
	mustDispatch(t, d, call("deleteAllProperties"))
	if all := mustDispatch(t, d, call("getProperties")); len(all.(map[string]string)) != 0 {
		t.Errorf("getProperties after delete all = %v", all)
	}

	if v := mustDispatch(t, d, call("getActiveUserEmail")); v != "dev-user@example.com" {
		t.Errorf("getActiveUserEmail = %v", v)
	}
	if v := mustDispatch(t, d, call("getScriptTimeZone")); v != "UTC" {
		t.Errorf("getScriptTimeZone = %v", v)
	}
	if v := mustDispatch(t, d, call("formatDate", "2023-01-15T12:30:45Z", nil, "yyyy/MM/dd HH:mm:ss")); v != "2023/01/15 12:30:45" {
		t.Errorf("formatDate = %v", v)
	}
}

func TestRegisterReplacesAndNames(t *testing.T) {
	d := NewDispatcher()
	d.Register("b", func([]json.RawMessage) (any, error) { return 1, nil })
	d.Register("a", func([]json.RawMessage) (any, error) { return nil, errors.New("boom") })
	d.Register("b", func([]json.RawMessage) (any, error) { return 2, nil })

	if names := d.Names(); !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("Names = %v, expected [a b]", names)
	}
	if res := d.Dispatch(Call{ID: "7", Function: "b"}); res.Data != 2 || res.ID != "7" {
		t.Errorf("Dispatch(b) = %+v, expected data 2 and id 7", res)
	}
	if res := d.Dispatch(Call{Function: "a"}); res.Error != "boom" {
		t.Errorf("Dispatch(a) error = %q, expected boom", res.Error)
	}
}

func postCall(t *testing.T, url string, body string) (int, Result) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return resp.StatusCode, res
}

func TestHTTPHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)
	srv := httptest.NewServer(d.Handler())
	defer srv.Close()

	status, res := postCall(t, srv.URL+RunPath, `{"functionName":"insertSheet","args":["Web"]}`)
	if status != http.StatusOK || res.Data != "Web" {
		t.Errorf("insertSheet = %d %+v", status, res)
	}

	status, res = postCall(t, srv.URL+RunPath, `{"functionName":"getValues","args":["Web!A1:B1"]}`)
	if status != http.StatusOK || !reflect.DeepEqual(res.Data, []any{[]any{"", ""}}) {
		t.Errorf("getValues = %d %+v", status, res)
	}

	status, res = postCall(t, srv.URL+RunPath, `{"functionName":"missing","args":[]}`)
	if status != http.StatusInternalServerError || res.Error == "" {
		t.Errorf("missing function = %d %+v, expected 500 with error", status, res)
	}

	status, res = postCall(t, srv.URL+RunPath, `not json`)
	if status != http.StatusBadRequest || res.Error == "" {
		t.Errorf("bad body = %d %+v, expected 400 with error", status, res)
	}

	resp, err := http.Get(srv.URL + RunPath)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, expected 405", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+RunPath, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("OPTIONS = %d, CORS origin %q", resp.StatusCode, resp.Header.Get("Access-Control-Allow-Origin"))
	}
}

func TestWebSocketHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)
	srv := httptest.NewServer(d.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + WebSocketPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	calls := []Call{
		call("insertSheet", "Live"),
		call("setValue", "Live!B2", 42),
		call("getValues", "Live!B2"),
	}
	for i := range calls {
		calls[i].ID = string(rune('a' + i))
		if err := conn.WriteJSON(calls[i]); err != nil {
			t.Fatalf("WriteJSON failed: %v", err)
		}
		var res Result
		if err := conn.ReadJSON(&res); err != nil {
			t.Fatalf("ReadJSON failed: %v", err)
		}
		if res.ID != calls[i].ID || res.Error != "" {
			t.Errorf("call %d result = %+v", i, res)
		}
		if i == 2 && !reflect.DeepEqual(res.Data, []any{[]any{float64(42)}}) {
			t.Errorf("getValues over websocket = %v", res.Data)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	var res Result
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("ReadJSON after bad message failed: %v", err)
	}
	if !strings.HasPrefix(res.Error, "invalid message") {
		t.Errorf("bad message result = %+v", res)
	}
}
