package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybridge/internal/interfaces/http/handlers/testutil"
	"skybridge/internal/node"
)

type stubService struct {
	servers []node.ID
	unread  []node.Message
	err     error
}

func (s *stubService) NodeID() node.ID                         { return 1 }
func (s *stubService) SendChat(node.Message) error             { return s.err }
func (s *stubService) DiscoverServers() ([]node.ID, error)     { return s.servers, s.err }
func (s *stubService) UnreadMessages() ([]node.Message, error) { return s.unread, s.err }

func newTestRouter(svc *stubService) *Router {
	r := NewRouter(svc, nil, "testdata", testutil.NewMockLogger())
	r.SetupRoutes()
	return r
}

func TestRoutesAreRegistered(t *testing.T) {
	r := newTestRouter(&stubService{servers: []node.ID{3}})

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/flood", "", http.StatusOK},
		{http.MethodPost, "/register", `{"id":3}`, http.StatusOK},
		{http.MethodPost, "/send", `{"server_id":3,"client_id":4,"message":"hi"}`, http.StatusOK},
		{http.MethodPost, "/clients", `{"server_id":3,"client_id":4,"message":""}`, http.StatusOK},
		{http.MethodGet, "/messages", "", http.StatusNoContent},
	}

	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, req)
		assert.Equalf(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestFloodRouteReturnsBareArray(t *testing.T) {
	r := newTestRouter(&stubService{servers: []node.ID{1, 3}})

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flood", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[1,3]", w.Body.String())
}

func TestEventsRouteAbsentWithoutEventChannel(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
