package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var method = expects.RequestMethod
var path = expects.RequestPath

func TestIntegrateCollectRecordsFromSource(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodGet),
			path("/api/users"),
			expects.QueryParamEquals("limit", "50"),
			expects.QueryParamEquals("offset", "0"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(remoteUsersBody)),
		),
	)

	handler, err := initialize(context.Background(), newTestConfig(ms.URL()), newAuthConfig())
	is.NoErr(err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, responseBody := testRequest(ts.URL, http.MethodGet, "/api/v1/records/UserInfo?profile=database", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(responseBody, `[{"username":"Braddles","email":"braddles@example.com","age":42}]`)
	is.Equal(ms.RequestCount(), 1)
}

func TestIntegrateTranslateWithConfiguredKeySet(t *testing.T) {
	is := is.New(t)

	handler, err := initialize(context.Background(), newTestConfig("http://127.0.0.1:1"), newAuthConfig())
	is.NoErr(err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	body := `{"observation_id":"urn:ngsi-ld:WeatherObserved:1","temp_c":-2.5,"observed_at":"2024-01-10T06:00:00Z"}`
	resp, responseBody := testRequest(ts.URL, http.MethodPost, "/api/v1/records/WeatherObserved/translate?from=database&to=remote", "application/json", strings.NewReader(body))

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(responseBody, `{"id":"urn:ngsi-ld:WeatherObserved:1","temperature":-2.5,"dateObserved":"2024-01-10T06:00:00Z"}`)
}

func TestInitializeFailsWithBrokenConfig(t *testing.T) {
	is := is.New(t)

	_, err := initialize(context.Background(), bytes.NewBufferString("keysets: [this is: not"), newAuthConfig())
	is.True(err != nil) // should fail to load configuration
}

func testRequest(baseURL, method, path, contentType string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, baseURL+path, body)
	if contentType != "" {
		req.Header.Add("Content-Type", contentType)
	}

	resp, _ := http.DefaultClient.Do(req)
	respBody, _ := io.ReadAll(resp.Body)
	defer resp.Body.Close()

	return resp, string(respBody)
}

func newAuthConfig() io.Reader {
	return bytes.NewBufferString(opaModule)
}

func newTestConfig(url string) io.Reader {
	return bytes.NewBufferString(fmt.Sprintf(configFileFmt, url))
}

var configFileFmt string = `
keysets:
  - type: WeatherObserved
    profile: database
    keys:
      id: observation_id
      temperature: temp_c
      humidity: relative_humidity
      dateObserved: observed_at
      refDevice: device_id
sources:
  - type: UserInfo
    profile: remote
    endpoint: %s
    path: /api/users
`

const opaModule string = `
package example.authz

default allow := false

allow = response {
    response := {
    }
}
`

const remoteUsersBody string = `[{"user_name":"Braddles","email_address":"braddles@example.com","user_age":42}]`
