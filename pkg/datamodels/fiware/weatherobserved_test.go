package fiware

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/diwise/record-translator/pkg/keyset/codec"
	"github.com/diwise/record-translator/pkg/keyset/container"
	keyerrors "github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/diwise/record-translator/pkg/keyset/keys"
	"github.com/matryer/is"
)

func TestNewWeatherObservedAddsIDPrefix(t *testing.T) {
	is := is.New(t)

	wo := NewWeatherObserved("sensor-1", 12.5, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	is.Equal(wo.ID, "urn:ngsi-ld:WeatherObserved:sensor-1")

	wo = NewWeatherObserved(wo.ID, 12.5, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	is.Equal(wo.ID, "urn:ngsi-ld:WeatherObserved:sensor-1")
}

func TestTranslateFromLocalToRemoteOmitsAbsentOptionalFields(t *testing.T) {
	is := is.New(t)

	src, err := container.FromJSON([]byte(`{"ID":"urn:ngsi-ld:WeatherObserved:sensor-1","TEMP":12.5,"OBSERVED_AT":"2024-05-01T12:00:00+02:00","DEVICE":"urn:ngsi-ld:Device:sensor-1"}`))
	is.NoErr(err)

	dst := container.New()
	err = WeatherObservedBinding().Translate(src, keys.Local, keys.Remote, dst)
	is.NoErr(err)

	b, _ := json.Marshal(dst)
	is.Equal(string(b), `{"id":"urn:ngsi-ld:WeatherObserved:sensor-1","temperature":12.5,"dateObserved":"2024-05-01T10:00:00Z","refDevice":"urn:ngsi-ld:Device:sensor-1"}`)
}

func TestDecodeOptionalHumidity(t *testing.T) {
	is := is.New(t)

	src, _ := container.FromJSON([]byte(`{"id":"x","temperature":-3,"relativeHumidity":0.81,"dateObserved":"2024-01-01T00:00:00Z"}`))

	wo, err := codec.Decode[WeatherObserved, Field](src, keys.Remote)
	is.NoErr(err)
	is.Equal(wo.Temperature, -3.0)
	is.Equal(*wo.Humidity, 0.81)
	is.True(wo.RefDevice == nil)
}

func TestNoDatabaseKeySetIsRegistered(t *testing.T) {
	is := is.New(t)

	_, err := codec.Decode[WeatherObserved, Field](container.New(), keys.Database)
	is.True(errors.Is(err, keyerrors.ErrKeySetNotFound))
}

func TestRoundTripWithOptionalFields(t *testing.T) {
	is := is.New(t)

	humidity := 0.5
	device := "urn:ngsi-ld:Device:sensor-1"

	wo := NewWeatherObserved("sensor-1", 21.0, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	wo.Humidity = &humidity
	wo.RefDevice = &device

	for _, p := range []keys.Profile{keys.Local, keys.Remote} {
		dst := container.New()
		is.NoErr(codec.Encode[WeatherObserved, Field](wo, dst, p))
		is.Equal(dst.Len(), 5)

		decoded, err := codec.Decode[WeatherObserved, Field](dst, p)
		is.NoErr(err)
		is.Equal(decoded, wo)
	}
}

func TestEveryKeySetCoversEveryField(t *testing.T) {
	is := is.New(t)
	is.NoErr(WeatherObservedBinding().Validate())
}
