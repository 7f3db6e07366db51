package fiware

const urnPrefix string = "urn:ngsi-ld:"

const (
	//WeatherObservedTypeName is a type name constant for WeatherObserved
	WeatherObservedTypeName string = "WeatherObserved"
	//WeatherObservedIDPrefix contains the mandatory prefix for WeatherObserved ID:s
	WeatherObservedIDPrefix string = urnPrefix + WeatherObservedTypeName + ":"
)
