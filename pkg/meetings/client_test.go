package meetings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		io.WriteString(w, `{"status":"success","meetings":[
			{"id":"m1","title":"Weekly Sync","calendar_event_time":"2023-11-05T10:00:00Z","creator_name":"Sam","creator_email":"sam@example.com","transcript":"We discussed the audio engine."},
			{"id":"m2","title":"Design Review","enhanced_notes":"Polished notes.","my_notes":"raw"}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok", nil)
	got, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Weekly Sync", got[0].Title)
	assert.Equal(t, "We discussed the audio engine.", got[0].Notes())
	assert.Equal(t, "Polished notes.", got[1].Notes(), "enhanced notes win over raw notes")
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, shadowerrors.IsMeetingsError(err))

	var mErr *shadowerrors.MeetingsError
	require.True(t, shadowerrors.As(err, &mErr))
	assert.Equal(t, 502, mErr.StatusCode)
}

func TestFetchEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"error","meetings":[]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, shadowerrors.IsMeetingsError(err))
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", nil)
	_, err := client.Fetch(context.Background())
	assert.True(t, shadowerrors.IsMeetingsError(err))
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed before use to force a connection error.

	client := NewClient(srv.URL, "", nil)
	_, err := client.Fetch(context.Background())
	assert.True(t, shadowerrors.IsMeetingsError(err))
}

func TestNotesFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		m    Meeting
		want string
	}{
		{"transcript first", Meeting{Transcript: "t", EnhancedNotes: "e", MyNotes: "n"}, "t"},
		{"enhanced second", Meeting{EnhancedNotes: "e", MyNotes: "n"}, "e"},
		{"raw last", Meeting{MyNotes: "n"}, "n"},
		{"empty", Meeting{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Notes())
		})
	}
}
