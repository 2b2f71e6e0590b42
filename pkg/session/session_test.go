package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slkit/slkit/pkg/filter"
)

type captured struct {
	method string
	path   string
	query  map[string]string
	body   map[string]any
	auth   struct {
		user, pass string
		ok         bool
	}
	requestID string
}

func newTestServer(t *testing.T, status int, response string, opts ...Option) (*Session, *captured) {
	t.Helper()
	cap := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.method = r.Method
		cap.path = r.URL.Path
		cap.query = map[string]string{}
		for k := range r.URL.Query() {
			cap.query[k] = r.URL.Query().Get(k)
		}
		cap.auth.user, cap.auth.pass, cap.auth.ok = r.BasicAuth()
		cap.requestID = r.Header.Get("X-Request-Id")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&cap.body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, "user", "key", opts...), cap
}

func TestDoGetBuildsURL(t *testing.T) {
	sess, cap := newTestServer(t, http.StatusOK, `{"id": 7}`)

	var result struct {
		ID int `json:"id"`
	}
	req := Request{
		Service: "SoftLayer_Network_Vlan_Firewall",
		Method:  "getObject",
		ID:      intPtr(3130),
		Mask:    "mask[id,billingItem[id]]",
	}
	err := sess.Do(context.Background(), req, &result)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, cap.method)
	assert.Equal(t, "/SoftLayer_Network_Vlan_Firewall/3130/getObject.json", cap.path)
	assert.Equal(t, "mask[id,billingItem[id]]", cap.query["objectMask"])
	assert.Equal(t, 7, result.ID)
}

func TestDoSetsBasicAuthAndRequestID(t *testing.T) {
	sess, cap := newTestServer(t, http.StatusOK, `[]`)

	err := sess.Do(context.Background(), Request{
		Service: "SoftLayer_Account",
		Method:  "getNetworkVlans",
	}, nil)
	require.NoError(t, err)

	assert.True(t, cap.auth.ok)
	assert.Equal(t, "user", cap.auth.user)
	assert.Equal(t, "key", cap.auth.pass)
	assert.NotEmpty(t, cap.requestID)
}

func TestDoBearerTokenOverridesBasicAuth(t *testing.T) {
	var authz string
	var basicOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		_, _, basicOK = r.BasicAuth()
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	sess := New(srv.URL, "user", "key",
		WithBearerToken("iam-token"),
		WithHTTPClient(srv.Client()),
	)
	err := sess.Do(context.Background(), Request{
		Service: "SoftLayer_Account",
		Method:  "getObject",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer iam-token", authz)
	assert.False(t, basicOK)
}

func TestDoRateLimitWaitHonorsContext(t *testing.T) {
	// Burst of one: the first call drains the bucket, the second would have
	// to wait roughly 17 minutes and must bail out on the cancelled context
	// instead.
	sess, _ := newTestServer(t, http.StatusOK, `[]`, WithRateLimit(0.001, 1))

	req := Request{Service: "SoftLayer_Account", Method: "getObject"}
	require.NoError(t, sess.Do(context.Background(), req, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sess.Do(ctx, req, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDoRateLimitAllowsBurst(t *testing.T) {
	sess, _ := newTestServer(t, http.StatusOK, `[]`, WithRateLimit(1, 3))

	req := Request{Service: "SoftLayer_Account", Method: "getObject"}
	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Do(context.Background(), req, nil))
	}
}

func TestWithRateLimit(t *testing.T) {
	assert.Nil(t, New("", "u", "k", WithRateLimit(0, 5)).limiter)

	s := New("", "u", "k", WithRateLimit(5, 0))
	require.NotNil(t, s.limiter)
	assert.Equal(t, 1, s.limiter.Burst())
}

func TestDoEncodesObjectFilter(t *testing.T) {
	sess, cap := newTestServer(t, http.StatusOK, `[]`)

	req := Request{
		Service: "SoftLayer_Product_Package",
		Method:  "getItems",
		ID:      intPtr(0),
		Filter:  filter.New().Set("items.description", filter.Query("10Mbps Hardware Firewall")),
	}
	require.NoError(t, sess.Do(context.Background(), req, nil))

	assert.JSONEq(t,
		`{"items":{"description":{"operation":"_= 10Mbps Hardware Firewall"}}}`,
		cap.query["objectFilter"])
}

func TestDoPostsParameters(t *testing.T) {
	sess, cap := newTestServer(t, http.StatusOK, `{"orderId": 99}`)

	order := map[string]any{"complexType": "SoftLayer_Container_Product_Order_Network_Protection_Firewall"}
	req := Request{
		Service: "SoftLayer_Product_Order",
		Method:  "placeOrder",
		Args:    []any{order},
	}
	require.NoError(t, sess.Do(context.Background(), req, nil))

	assert.Equal(t, http.MethodPost, cap.method)
	params, ok := cap.body["parameters"].([]any)
	require.True(t, ok)
	require.Len(t, params, 1)
	first, ok := params[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "SoftLayer_Container_Product_Order_Network_Protection_Firewall", first["complexType"])
}

func TestDoDecodesAPIError(t *testing.T) {
	sess, _ := newTestServer(t, http.StatusInternalServerError,
		`{"error": "Unable to find object with id of '99'.", "code": "SoftLayer_Exception_ObjectNotFound"}`)

	err := sess.Do(context.Background(), Request{
		Service: "SoftLayer_Network_Vlan_Firewall",
		Method:  "getObject",
		ID:      intPtr(99),
	}, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "SoftLayer_Exception_ObjectNotFound", apiErr.Exception)
	assert.True(t, IsNotFound(err))
}

func TestDoNullResponseLeavesResultUntouched(t *testing.T) {
	sess, _ := newTestServer(t, http.StatusOK, `null`)

	var result *struct {
		ID int `json:"id"`
	}
	err := sess.Do(context.Background(), Request{
		Service: "SoftLayer_Network_Component_Firewall",
		Method:  "getObject",
		ID:      intPtr(1),
	}, &result)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&Error{StatusCode: http.StatusNotFound}))
	assert.True(t, IsNotFound(&Error{StatusCode: 500, Exception: "SoftLayer_Exception_ObjectNotFound"}))
	assert.False(t, IsNotFound(&Error{StatusCode: 500, Exception: "SoftLayer_Exception_Public"}))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestNewDefaultsEndpoint(t *testing.T) {
	sess := New("", "user", "key")
	assert.Equal(t, DefaultEndpoint, sess.Endpoint)
}

func intPtr(v int) *int { return &v }
