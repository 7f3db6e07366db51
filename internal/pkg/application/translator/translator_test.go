package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/diwise/record-translator/pkg/datamodels/users"
	"github.com/diwise/record-translator/pkg/keyset/container"
	keyerrors "github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/diwise/record-translator/pkg/keyset/types"
	"github.com/matryer/is"
)

func TestNewWithEmptyConfig(t *testing.T) {
	is := is.New(t)

	app, err := New(context.Background(), withEmptyConfig(), DefaultBindings()...)

	is.NoErr(err)
	is.Equal(app.RecordTypes(), []RecordTypeInfo{
		{Type: "UserInfo", Profiles: []string{"database", "local", "remote"}},
		{Type: "WeatherObserved", Profiles: []string{"local", "remote"}},
	})
}

func TestNewWithDefaultConfigAddsDatabaseKeySet(t *testing.T) {
	is := is.New(t)

	app, err := New(context.Background(), withDefaultTestConfig(""), DefaultBindings()...)
	is.NoErr(err)

	is.Equal(app.RecordTypes()[1].Profiles, []string{"database", "local", "remote"})
}

func TestNewFailsWithIncompleteKeySet(t *testing.T) {
	is := is.New(t)

	cfg := &Config{KeySets: []KeySetConfig{{Type: "UserInfo", Profile: "local", Keys: map[string]string{"username": "NAME"}}}}
	_, err := New(context.Background(), cfg, DefaultBindings()...)

	is.True(errors.Is(err, keyerrors.ErrKeyNotFound)) // email and age have no keys
}

func TestNewFailsWithUnknownRecordType(t *testing.T) {
	is := is.New(t)

	cfg := &Config{KeySets: []KeySetConfig{{Type: "Beach", Profile: "local"}}}
	_, err := New(context.Background(), cfg, DefaultBindings()...)

	is.True(errors.Is(err, keyerrors.ErrUnknownRecordType))
}

func TestNewFailsWithUnknownProfile(t *testing.T) {
	is := is.New(t)

	cfg := &Config{Sources: []SourceConfig{{Type: "UserInfo", Profile: "cloud", Endpoint: "http://localhost"}}}
	_, err := New(context.Background(), cfg, DefaultBindings()...)

	is.True(errors.Is(err, keyerrors.ErrUnknownProfile))
}

func TestNewFailsWithDuplicateBindings(t *testing.T) {
	is := is.New(t)

	_, err := New(context.Background(), withEmptyConfig(), users.Binding(), users.Binding())
	is.True(err != nil) // should have returned an error
}

func TestTranslateFromLocalToRemote(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withEmptyConfig(), DefaultBindings()...)

	src, _ := container.FromJSON([]byte(`{"USER_NAME":"Braddles","EMAIL":"braddles@example.com","AGE":42}`))
	result, err := app.Translate(context.Background(), "UserInfo", keys.Local, keys.Remote, []types.Source{src})

	is.NoErr(err)
	is.True(result.ID != "")
	is.Equal(len(result.Records), 1)

	b, _ := json.Marshal(result.Records[0])
	is.Equal(string(b), `{"user_name":"Braddles","email_address":"braddles@example.com","user_age":42}`)
}

func TestTranslateFailsForWholeBatch(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withEmptyConfig(), DefaultBindings()...)

	good, _ := container.FromJSON([]byte(`{"USER_NAME":"Braddles","EMAIL":"braddles@example.com","AGE":42}`))
	bad, _ := container.FromJSON([]byte(`{"USER_NAME":"Braddles"}`))

	result, err := app.Translate(context.Background(), "UserInfo", keys.Local, keys.Remote, []types.Source{good, bad})

	is.True(errors.Is(err, keyerrors.ErrFieldMissing))
	is.True(result == nil)
}

func TestTranslateUnknownRecordType(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withEmptyConfig(), DefaultBindings()...)
	_, err := app.Translate(context.Background(), "Beach", keys.Local, keys.Remote, []types.Source{container.New()})

	is.True(errors.Is(err, keyerrors.ErrUnknownRecordType))
}

func TestTranslateWithConfiguredKeySet(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withDefaultTestConfig(""), DefaultBindings()...)

	src, _ := container.FromJSON([]byte(`{"observation_id":"x","temp_c":7.5,"observed_at":"2024-05-01T10:00:00Z"}`))
	result, err := app.Translate(context.Background(), "WeatherObserved", keys.Database, keys.Remote, []types.Source{src})
	is.NoErr(err)

	b, _ := json.Marshal(result.Records[0])
	is.Equal(string(b), `{"id":"x","temperature":7.5,"dateObserved":"2024-05-01T10:00:00Z"}`)
}

func TestDecode(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withEmptyConfig(), DefaultBindings()...)

	src, _ := container.FromJSON([]byte(`{"username":"Braddles","email":"braddles@example.com","age":42}`))
	records, err := app.Decode(context.Background(), "UserInfo", keys.Database, []types.Source{src})

	is.NoErr(err)
	is.Equal(records[0], users.UserInfo{Username: "Braddles", Email: "braddles@example.com", Age: 42})
}

func TestEncode(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withEmptyConfig(), DefaultBindings()...)

	result, err := app.Encode(context.Background(), "UserInfo", keys.Local, []json.RawMessage{
		json.RawMessage(`{"username":"Braddles","email":"braddles@example.com","age":42}`),
	})

	is.NoErr(err)
	is.Equal(result.Records[0].Names(), []string{"USER_NAME", "EMAIL", "AGE"})
}

func TestCollectTranslatesRecordsFromSources(t *testing.T) {
	is := is.New(t)

	ts := setupMockSourceResponse(http.StatusOK, `[{"user_name":"Braddles","email_address":"braddles@example.com","user_age":42}]`)
	defer ts.Close()

	app, err := New(context.Background(), withDefaultTestConfig(ts.URL), DefaultBindings()...)
	is.NoErr(err)

	result, err := app.Collect(context.Background(), "UserInfo", keys.Local)
	is.NoErr(err)
	is.Equal(len(result.Records), 1)

	b, _ := json.Marshal(result.Records[0])
	is.Equal(string(b), `{"USER_NAME":"Braddles","EMAIL":"braddles@example.com","AGE":42}`)
}

func TestCollectFailsWhenSourceReturnsIncompleteRecords(t *testing.T) {
	is := is.New(t)

	ts := setupMockSourceResponse(http.StatusOK, `[{"user_name":"Braddles"}]`)
	defer ts.Close()

	app, _ := New(context.Background(), withDefaultTestConfig(ts.URL), DefaultBindings()...)

	_, err := app.Collect(context.Background(), "UserInfo", keys.Local)
	is.True(errors.Is(err, keyerrors.ErrFieldMissing))
}

func TestCollectWithoutSources(t *testing.T) {
	is := is.New(t)

	app, _ := New(context.Background(), withEmptyConfig(), DefaultBindings()...)

	_, err := app.Collect(context.Background(), "UserInfo", keys.Local)
	is.True(errors.Is(err, ErrNoSourceConfigured))
}

func TestCollectChecksTargetKeySetBeforeQueryingSources(t *testing.T) {
	is := is.New(t)

	var requests atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cfg := withEmptyConfig()
	cfg.Sources = []SourceConfig{{Type: "WeatherObserved", Profile: "remote", Endpoint: ts.URL, Path: "/api/observations"}}

	app, err := New(context.Background(), cfg, DefaultBindings()...)
	is.NoErr(err)

	_, err = app.Collect(context.Background(), "WeatherObserved", keys.Database)
	is.True(errors.Is(err, keyerrors.ErrKeySetNotFound))
	is.Equal(requests.Load(), int32(0)) // no source should have been queried
}

func TestNewFailsWhenSourceProfileHasNoKeySet(t *testing.T) {
	is := is.New(t)

	cfg := withEmptyConfig()
	cfg.Sources = []SourceConfig{{Type: "WeatherObserved", Profile: "database", Endpoint: "http://localhost:1234"}}

	_, err := New(context.Background(), cfg, DefaultBindings()...)
	is.True(errors.Is(err, keyerrors.ErrKeySetNotFound))
}

func setupMockSourceResponse(responseCode int, responseBody string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Tenant") != "default" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(responseCode)
		w.Write([]byte(responseBody))
	}))
}

func withEmptyConfig() *Config {
	return &Config{}
}

func withDefaultTestConfig(endpoint string) *Config {
	cfg := &Config{
		KeySets: []KeySetConfig{
			{
				Type:    "WeatherObserved",
				Profile: "database",
				Keys: map[string]string{
					"id":           "observation_id",
					"temperature":  "temp_c",
					"humidity":     "relative_humidity",
					"dateObserved": "observed_at",
					"refDevice":    "device_id",
				},
			},
		},
	}

	if endpoint != "" {
		cfg.Sources = []SourceConfig{
			{Type: "UserInfo", Profile: "remote", Endpoint: endpoint, Path: "/api/users", Headers: map[string]string{"Tenant": "default"}},
		}
	}

	return cfg
}
