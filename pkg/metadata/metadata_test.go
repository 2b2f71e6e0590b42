package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slerrors "github.com/slkit/slkit/pkg/errors"
	"github.com/slkit/slkit/pkg/session"
)

func newTestManager(t *testing.T, responses map[string]string) *Manager {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := responses[r.URL.Path]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Unable to find object", "code": "SoftLayer_Exception_ObjectNotFound"}`))
	}))
	t.Cleanup(srv.Close)
	return NewWithSession(session.New(srv.URL, "", ""))
}

func TestScalarProperties(t *testing.T) {
	m := newTestManager(t, map[string]string{
		"/SoftLayer_Resource_Metadata/getId.json":                       `496890`,
		"/SoftLayer_Resource_Metadata/getFullyQualifiedDomainName.json": `"web01.example.com"`,
		"/SoftLayer_Resource_Metadata/getPrimaryIpAddress.json":         `"198.51.100.2"`,
		"/SoftLayer_Resource_Metadata/getPrimaryBackendIpAddress.json":  `"10.0.1.2"`,
		"/SoftLayer_Resource_Metadata/getDatacenter.json":               `"dal05"`,
		"/SoftLayer_Resource_Metadata/getDatacenterId.json":             `138124`,
	})
	ctx := context.Background()

	id, err := m.ID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 496890, id)

	fqdn, err := m.FQDN(ctx)
	require.NoError(t, err)
	assert.Equal(t, "web01.example.com", fqdn)

	ip, err := m.PrimaryIP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.2", ip)

	backendIP, err := m.PrimaryBackendIP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.2", backendIP)

	dc, err := m.Datacenter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dal05", dc)
}

func TestNetworkComposite(t *testing.T) {
	var routerArgs []any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/SoftLayer_Resource_Metadata/getBackendMacAddresses.json":
			_, _ = w.Write([]byte(`["06:00:00:00:00:01", "06:00:00:00:00:02"]`))
		case "/SoftLayer_Resource_Metadata/getRouter.json":
			var body map[string][]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			routerArgs = body["parameters"]
			_, _ = w.Write([]byte(`"bcr01a.dal05"`))
		case "/SoftLayer_Resource_Metadata/getVlans.json":
			_, _ = w.Write([]byte(`[1860]`))
		case "/SoftLayer_Resource_Metadata/getVlanIds.json":
			_, _ = w.Write([]byte(`[565419]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	m := NewWithSession(session.New(srv.URL, "", ""))

	net, err := m.PrivateNetwork(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"06:00:00:00:00:01", "06:00:00:00:00:02"}, net.MACAddresses)
	assert.Equal(t, "bcr01a.dal05", net.Router)
	assert.Equal(t, []int{1860}, net.Vlans)
	assert.Equal(t, []int{565419}, net.VlanIDs)
	assert.Equal(t, []any{"06:00:00:00:00:01"}, routerArgs)
}

func TestPropertyDispatch(t *testing.T) {
	m := newTestManager(t, map[string]string{
		"/SoftLayer_Resource_Metadata/getPrimaryBackendIpAddress.json": `"10.0.1.2"`,
		"/SoftLayer_Resource_Metadata/getTags.json":                    `["prod", "web"]`,
	})
	ctx := context.Background()

	got, err := m.Property(ctx, "backend_ip")
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.2", got)

	tags, err := m.Property(ctx, "tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod", "web"}, tags)

	_, err = m.Property(ctx, "bogus")
	require.Error(t, err)
	assert.True(t, slerrors.IsCode(err, slerrors.ErrCodeInvalidInput))
}
