package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheck_ProbesEveryURL(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		hits.Add(1)
	}))
	defer srv.Close()

	// --- Act ---
	Check(context.Background(), []string{srv.URL + "/a", srv.URL + "/b"}, 2*time.Second)

	// --- Assert ---
	require.Equal(t, int32(2), hits.Load())
}

func TestCheck_ToleratesUnreachableURLs(t *testing.T) {
	t.Parallel()

	// A refused connection and an error status must not panic or abort.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	require.NotPanics(t, func() {
		Check(context.Background(), []string{"http://127.0.0.1:1/x", srv.URL}, time.Second)
	})
}

func TestLaunch_NoURLsIsNoOp(t *testing.T) {
	t.Parallel()

	Launch(context.Background(), nil, time.Second)
}
