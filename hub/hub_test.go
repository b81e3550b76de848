package hub

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lmmx/roundel/render"
	"github.com/lmmx/roundel/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	mu     sync.Mutex
	calls  []string
	paused bool
	follow bool
	pick   int
}

func (f *fakeTarget) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeTarget) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTarget) DragStart(x, y float64) { f.record("dragStart %g %g", x, y) }
func (f *fakeTarget) DragMove(x, y float64)  { f.record("dragMove %g %g", x, y) }
func (f *fakeTarget) DragEnd()               { f.record("dragEnd") }
func (f *fakeTarget) Zoom(d float64)         { f.record("zoom %g", d) }
func (f *fakeTarget) PinchStart(d float64)   { f.record("pinchStart %g", d) }
func (f *fakeTarget) PinchMove(d float64)    { f.record("pinchMove %g", d) }
func (f *fakeTarget) Resize(w, h float64)    { f.record("resize %g %g", w, h) }
func (f *fakeTarget) SetTickInterval(ms int) { f.record("interval %d", ms) }

func (f *fakeTarget) PickVehicle(x, y float64) (int, bool) {
	f.record("pick %g %g", x, y)
	return f.pick, f.pick >= 0
}

func (f *fakeTarget) SetPaused(p bool) bool {
	f.record("pause %t", p)
	f.paused = p
	return p
}

func (f *fakeTarget) TogglePaused() bool {
	f.record("toggle")
	f.paused = !f.paused
	return f.paused
}

func (f *fakeTarget) SetDataSource(m resolver.Mode) error {
	f.record("source %s", m)
	if m == resolver.ModeLive {
		return errors.New("live disabled")
	}
	return nil
}

func (f *fakeTarget) SetFollow(on bool) bool {
	f.record("follow %t", on)
	f.follow = on && f.pick >= 0
	return f.follow
}

func boolPtr(b bool) *bool { return &b }

func TestDispatch(t *testing.T) {
	tests := []struct {
		name    string
		in      Intent
		call    string
		reply   bool
		wantErr bool
	}{
		{"drag start", Intent{Type: IntentDragStart, X: 1, Y: 2}, "dragStart 1 2", false, false},
		{"drag move", Intent{Type: IntentDragMove, X: 3, Y: 4}, "dragMove 3 4", false, false},
		{"drag end", Intent{Type: IntentDragEnd}, "dragEnd", false, false},
		{"wheel", Intent{Type: IntentWheel, Delta: -120}, "zoom -120", false, false},
		{"pinch start", Intent{Type: IntentPinchStart, Dist: 80}, "pinchStart 80", false, false},
		{"pinch move", Intent{Type: IntentPinchMove, Dist: 90}, "pinchMove 90", false, false},
		{"resize", Intent{Type: IntentResize, Width: 640, Height: 480}, "resize 640 480", false, false},
		{"resize without size", Intent{Type: IntentResize}, "", false, true},
		{"click", Intent{Type: IntentClick, X: 10, Y: 20}, "pick 10 20", true, false},
		{"pause", Intent{Type: IntentPause, Paused: boolPtr(true)}, "pause true", true, false},
		{"pause without flag", Intent{Type: IntentPause}, "", false, true},
		{"toggle", Intent{Type: IntentToggle}, "toggle", true, false},
		{"interval", Intent{Type: IntentInterval, MS: 33}, "interval 33", false, false},
		{"interval zero", Intent{Type: IntentInterval}, "", false, true},
		{"source", Intent{Type: IntentSource, Mode: "Static"}, "source static", true, false},
		{"source unknown", Intent{Type: IntentSource, Mode: "bogus"}, "", false, true},
		{"source failing", Intent{Type: IntentSource, Mode: "live"}, "source live", false, true},
		{"follow", Intent{Type: IntentFollow, Enabled: boolPtr(true)}, "follow true", true, false},
		{"unknown", Intent{Type: "jump"}, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{pick: 2}
			reply, err := Dispatch(target, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.reply, reply != nil)
			if tt.call == "" {
				assert.Empty(t, target.Calls())
			} else {
				assert.Equal(t, []string{tt.call}, target.Calls())
			}
		})
	}
}

func TestDispatch_ClickReply(t *testing.T) {
	reply, err := Dispatch(&fakeTarget{pick: 4}, Intent{Type: IntentClick})
	require.NoError(t, err)
	require.NotNil(t, reply.Index)
	assert.Equal(t, 4, *reply.Index)
	assert.True(t, reply.OK)

	reply, err = Dispatch(&fakeTarget{pick: -1}, Intent{Type: IntentClick})
	require.NoError(t, err)
	assert.Nil(t, reply.Index)
	assert.False(t, reply.OK)
}

func TestDecodeIntent(t *testing.T) {
	in, err := DecodeIntent([]byte(`{"type":"wheel","delta":3}`))
	require.NoError(t, err)
	assert.Equal(t, Intent{Type: IntentWheel, Delta: 3}, in)

	_, err = DecodeIntent([]byte(`{"delta":3}`))
	assert.Error(t, err)
	_, err = DecodeIntent([]byte(`not json`))
	assert.Error(t, err)
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_RoundTrip(t *testing.T) {
	target := &fakeTarget{pick: 1}
	h := New(target)
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	h.Publish(&render.Frame{Seq: 1}) // nobody listening yet

	conn := dial(t, srv.URL)
	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Intent{Type: IntentToggle}))
	var reply Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "reply", reply.Type)
	assert.Equal(t, IntentToggle, reply.Intent)
	require.NotNil(t, reply.Paused)
	assert.True(t, *reply.Paused)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"warp"}`)))
	reply = Reply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Contains(t, reply.Error, "unknown intent")

	h.Publish(&render.Frame{Seq: 9, Clear: true})
	var msg struct {
		Type  string       `json:"type"`
		Frame render.Frame `json:"frame"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "frame", msg.Type)
	assert.Equal(t, uint64(9), msg.Frame.Seq)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return h.Clients() == 0 }, time.Second, 5*time.Millisecond)
	t.Logf("✓ intents dispatched: %v", target.Calls())
}
