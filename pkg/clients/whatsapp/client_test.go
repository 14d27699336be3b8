package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/config"
)

const messagesURL = "https://graph.test/v20.0/1234/messages"

func newMockedClient(t *testing.T) *APIClient {
	t.Helper()
	c := NewClient(config.WhatsAppConfig{
		AccessToken:   "secret",
		PhoneNumberID: "1234",
		BaseURL:       "https://graph.test/",
		APIVersion:    "v20.0",
	})
	httpmock.ActivateNonDefault(c.httpClient.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestSendTextMessageSendsPayload(t *testing.T) {
	c := newMockedClient(t)

	var got map[string]any
	httpmock.RegisterResponder(http.MethodPost, messagesURL, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
			"messages": []map[string]string{{"id": "wamid.1"}},
		})
	})

	resp, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "919876543210", Body: "Follow-up due today"})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "wamid.1", resp.Messages[0].ID)

	assert.Equal(t, "whatsapp", got["messaging_product"])
	assert.Equal(t, "919876543210", got["to"])
	assert.Equal(t, "text", got["type"])
	assert.Equal(t, "Follow-up due today", got["text"].(map[string]any)["body"])
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSendTextMessageSurfacesAPIError(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, messagesURL, httpmock.NewJsonResponderOrPanic(http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"message": "Recipient phone number not in allowed list",
			"type":    "OAuthException",
			"code":    131030,
		},
	}))

	_, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "1", Body: "hi"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, 131030, apiErr.Code)
	assert.Contains(t, apiErr.Message, "allowed list")
}
