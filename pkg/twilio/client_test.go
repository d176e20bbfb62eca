package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcsonSantos/lu-estilo/pkg/config"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.TwilioConfig{
		AccountSID:    "AC123",
		AuthToken:     "secret",
		SandboxNumber: "whatsapp:+14155238886",
	}).WithBaseURL(baseURL)
}

func TestClient_Send(t *testing.T) {
	var got *http.Request
	var form map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"From": r.PostForm.Get("From"),
			"To":   r.PostForm.Get("To"),
			"Body": r.PostForm.Get("Body"),
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SM42"}`))
	}))
	defer server.Close()

	sid, err := testClient(server.URL).Send(context.Background(), "+5511999999999", "order shipped")
	require.NoError(t, err)
	assert.Equal(t, "SM42", sid)

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", got.URL.Path)
	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "AC123", user)
	assert.Equal(t, "secret", pass)

	assert.Equal(t, "whatsapp:+14155238886", form["From"])
	assert.Equal(t, "whatsapp:+5511999999999", form["To"])
	assert.Equal(t, "order shipped", form["Body"])
}

func TestClient_SendUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code": 20003, "message": "Authentication Error"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Send(context.Background(), "+5511999999999", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Authentication Error")
}
