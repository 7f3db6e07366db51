package fiware

import (
	"strings"
	"time"

	"github.com/diwise/record-translator/pkg/keyset/codec"
	"github.com/diwise/record-translator/pkg/keyset/keys"
)

//go:generate stringer -type=Field -output=field_string.go

// Field identifies the fields of a WeatherObserved record
type Field int

const (
	ID Field = iota
	Temperature
	Humidity
	DateObserved
	RefDevice
)

// WeatherObserved has no database key set, one can be added through configuration
var weatherObservedKeySets = keys.MustRegistry(WeatherObservedTypeName,
	keys.MustTable(WeatherObservedTypeName, keys.Local, keys.Names[Field]{
		ID:           "ID",
		Temperature:  "TEMP",
		Humidity:     "HUMIDITY",
		DateObserved: "OBSERVED_AT",
		RefDevice:    "DEVICE",
	}),
	keys.MustTable(WeatherObservedTypeName, keys.Remote, keys.Names[Field]{
		ID:           "id",
		Temperature:  "temperature",
		Humidity:     "relativeHumidity",
		DateObserved: "dateObserved",
		RefDevice:    "refDevice",
	}),
)

type WeatherObserved struct {
	ID           string    `json:"id" yaml:"id"`
	Temperature  float64   `json:"temperature" yaml:"temperature"`
	Humidity     *float64  `json:"relativeHumidity,omitempty" yaml:"relativeHumidity,omitempty"`
	DateObserved time.Time `json:"dateObserved" yaml:"dateObserved"`
	RefDevice    *string   `json:"refDevice,omitempty" yaml:"refDevice,omitempty"`
}

//NewWeatherObserved creates a new instance of WeatherObserved
func NewWeatherObserved(observationID string, temperature float64, observedAt time.Time) WeatherObserved {
	if !strings.HasPrefix(observationID, WeatherObservedIDPrefix) {
		observationID = WeatherObservedIDPrefix + observationID
	}

	return WeatherObserved{
		ID:           observationID,
		Temperature:  temperature,
		DateObserved: observedAt.UTC(),
	}
}

func (*WeatherObserved) KeySets() *keys.Registry[Field] {
	return weatherObservedKeySets
}

func (*WeatherObserved) Fields() []Field {
	return []Field{ID, Temperature, Humidity, DateObserved, RefDevice}
}

func (w *WeatherObserved) DecodeKeys(d *codec.Decoder[Field]) (err error) {
	if w.ID, err = codec.DecodeField[string](d, ID); err != nil {
		return
	}
	if w.Temperature, err = codec.DecodeField[float64](d, Temperature); err != nil {
		return
	}
	if w.Humidity, err = codec.DecodeOptional[float64](d, Humidity); err != nil {
		return
	}
	if w.DateObserved, err = codec.DecodeField[time.Time](d, DateObserved); err != nil {
		return
	}
	w.RefDevice, err = codec.DecodeOptional[string](d, RefDevice)
	return
}

func (w *WeatherObserved) EncodeKeys(e *codec.Encoder[Field]) error {
	if err := codec.EncodeField(e, ID, w.ID); err != nil {
		return err
	}
	if err := codec.EncodeField(e, Temperature, w.Temperature); err != nil {
		return err
	}
	if err := codec.EncodeOptional(e, Humidity, w.Humidity); err != nil {
		return err
	}
	if err := codec.EncodeField(e, DateObserved, w.DateObserved); err != nil {
		return err
	}
	return codec.EncodeOptional(e, RefDevice, w.RefDevice)
}

func WeatherObservedBinding() codec.Binding {
	return codec.NewBinding[WeatherObserved, Field]()
}
