package location

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
}

func (f *fakeService) HandleLocationReplay(http.ResponseWriter, *http.Request) {
	f.lastCall = "replay"
}

func (f *fakeService) HandleLocationFeed() http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		f.lastCall = "feed"
	})
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	tests := []struct {
		path     string
		method   string
		wantCode int
		wantCall string
	}{
		{path: "/location/replay", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "replay"},
		{path: "/location/feed", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "feed"},
		{path: "/location/other", method: http.MethodGet, wantCode: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			svc.lastCall = ""
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall {
				t.Fatalf("lastCall = %q, want %q", svc.lastCall, tc.wantCall)
			}
		})
	}
}
