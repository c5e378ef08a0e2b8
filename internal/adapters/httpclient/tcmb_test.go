package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?><Tarih_Date Tarih="04.03.2024"></Tarih_Date>`

func TestTCMBClient_Success(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(sampleXML))
	}))
	t.Cleanup(srv.Close)

	c := NewTCMBClient(srv.Client(), srv.URL+"/kurlar/today.xml")

	body, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/kurlar/today.xml", gotPath)
	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, sampleXML, string(body))
}

func TestTCMBClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewTCMBClient(srv.Client(), srv.URL+"/today.xml")

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
}

func TestTCMBClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewTCMBClient(&http.Client{Timeout: 20 * time.Millisecond}, srv.URL)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to execute request")
}

func TestTCMBClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewTCMBClient(&http.Client{}, url)
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
}

func TestTCMBClient_InvalidURL(t *testing.T) {
	c := NewTCMBClient(&http.Client{}, "http://::1]")
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create request")
}

func TestNewTCMBClient_DefaultURL(t *testing.T) {
	c := NewTCMBClient(&http.Client{}, "")
	require.Equal(t, DefaultTodayURL, c.url)
}
