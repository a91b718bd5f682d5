package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/winshot/winshot/internal/capture"
	"github.com/winshot/winshot/internal/config"
	"github.com/winshot/winshot/internal/window"
)

type fakeLister struct {
	mu      sync.Mutex
	windows []window.Info
	err     error
}

func (f *fakeLister) List() ([]window.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]window.Info, len(f.windows))
	copy(out, f.windows)
	return out, nil
}

func (f *fakeLister) Find(title string) (window.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, info := range f.windows {
		if info.Title == title {
			return info.Handle, nil
		}
	}
	return 0, window.ErrWindowNotFound
}

func (f *fakeLister) Match(pattern string) (window.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, info := range f.windows {
		if strings.Contains(info.Title, pattern) {
			return info, nil
		}
	}
	return window.Info{}, window.ErrWindowNotFound
}

func (f *fakeLister) set(windows []window.Info) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = windows
}

type fakeCapturer struct {
	lastHwnd capture.WindowHandle
	lastOpts capture.Options
	err      error
}

func solidBuffer(w, h int) *capture.PixelBuffer {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 10
		pix[i+1] = 20
		pix[i+2] = 30
		pix[i+3] = 0xff
	}
	return &capture.PixelBuffer{Pix: pix, Width: uint(w), Height: uint(h), BytesPerPixel: 4}
}

func (f *fakeCapturer) CaptureWindow(hwnd capture.WindowHandle, opts capture.Options) (*capture.PixelBuffer, error) {
	f.lastHwnd = hwnd
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return solidBuffer(8, 6), nil
}

func (f *fakeCapturer) CaptureDisplay() (*capture.PixelBuffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return solidBuffer(16, 9), nil
}

func newTestServer(t *testing.T) (*Server, *fakeLister, *fakeCapturer) {
	t.Helper()
	cfgMgr, err := config.NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("config manager: %v", err)
	}
	lister := &fakeLister{windows: []window.Info{
		{Handle: 0x10, Title: "Calculator"},
		{Handle: 0x20, Title: "Notepad"},
	}}
	capturer := &fakeCapturer{}
	return NewServer(lister, capturer, cfgMgr), lister, capturer
}

func TestListWindows(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/windows", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var infos []window.Info
	if err := json.NewDecoder(rec.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 2 || infos[0].Title != "Calculator" {
		t.Errorf("unexpected window list: %+v", infos)
	}
}

func TestCaptureWindowByTitle(t *testing.T) {
	srv, _, capturer := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window?title=Notepad&format=png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("content type = %q", got)
	}
	if capturer.lastHwnd != 0x20 {
		t.Errorf("captured hwnd = %#x, want 0x20", uintptr(capturer.lastHwnd))
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("image size = %dx%d", b.Dx(), b.Dy())
	}
}

func TestCaptureWindowByPattern(t *testing.T) {
	srv, _, capturer := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window?pattern=Calc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if capturer.lastHwnd != 0x10 {
		t.Errorf("captured hwnd = %#x, want 0x10", uintptr(capturer.lastHwnd))
	}
}

func TestCaptureWindowNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window?title=Missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCaptureWindowMissingTarget(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCaptureWindowInvalidCombination(t *testing.T) {
	srv, _, capturer := newTestServer(t)
	capturer.err = capture.ErrInvalidCaptureCombination

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window?title=Notepad&method=bitblt&area=full", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCaptureWindowBadMethod(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window?title=Notepad&method=dwm", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCaptureWindowCropOption(t *testing.T) {
	srv, _, capturer := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/window?title=Notepad&crop=10,20,300,200", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	crop := capturer.lastOpts.Crop
	if crop == nil || crop.X != 10 || crop.Y != 20 || crop.Width != 300 || crop.Height != 200 {
		t.Errorf("crop = %+v", crop)
	}
}

func TestCaptureDisplayFormat(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/display?format=bmp", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/bmp" {
		t.Errorf("content type = %q", got)
	}
}

func TestParseCrop(t *testing.T) {
	tests := []struct {
		in      string
		want    capture.Crop
		wantErr bool
	}{
		{in: "0,0,100,50", want: capture.Crop{Width: 100, Height: 50}},
		{in: " 1, 2, 3, 4 ", want: capture.Crop{X: 1, Y: 2, Width: 3, Height: 4}},
		{in: "1,2,3", wantErr: true},
		{in: "a,b,c,d", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCrop(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCrop(%q): no error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCrop(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCrop(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestUpdateConfig(t *testing.T) {
	srv, _, _ := newTestServer(t)

	cfg := config.Defaults()
	cfg.Format = "jpeg"
	payload, _ := json.Marshal(cfg)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/config", bytes.NewReader(payload))
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := srv.configMgr.Get().Format; got != "jpeg" {
		t.Errorf("format after update = %q", got)
	}

	// The capture default should now follow the updated config.
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/display", nil))
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", got)
	}
}

func TestCORSPreflightRequest(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/windows", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestWindowEventsStream(t *testing.T) {
	srv, lister, _ := newTestServer(t)
	if err := srv.configMgr.Update(func() *config.Config {
		c := config.Defaults()
		c.PollIntervalMs = 10
		return c
	}()); err != nil {
		t.Fatalf("config update: %v", err)
	}

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/windows/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var first windowEvent
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial event: %v", err)
	}
	if len(first.Windows) != 2 {
		t.Fatalf("initial snapshot has %d windows", len(first.Windows))
	}

	lister.set([]window.Info{{Handle: 0x30, Title: "Paint"}})

	var next windowEvent
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read change event: %v", err)
	}
	if len(next.Windows) != 1 || next.Windows[0].Title != "Paint" {
		t.Errorf("change event = %+v", next.Windows)
	}
}
