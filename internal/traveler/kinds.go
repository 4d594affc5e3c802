package traveler

// Record kinds assigned by the discriminator table.
const (
	KindBorderCrossing  = "BorderCrossing"
	KindBridgeClearance = "BridgeClearance"
	KindCVRestriction   = "CVRestriction"
	KindAlert           = "Alert"
	KindCamera          = "Camera"
	KindPassCondition   = "PassCondition"
	KindFlowData        = "FlowData"
	KindTravelTime      = "TravelTime"
	KindWeatherInfo     = "WeatherInfo"
	KindTollRate        = "TollRate"
)

// Discriminator assigns Kind to an object that contains RequiredKey.
type Discriminator struct {
	RequiredKey string
	Kind        string
}

// DefaultDiscriminators is the ordered record-type table. The first entry
// whose key is present in a raw object decides its kind, so entries with
// more specific keys come first.
func DefaultDiscriminators() []Discriminator {
	return []Discriminator{
		{RequiredKey: "BorderCrossingLocation", Kind: KindBorderCrossing},
		{RequiredKey: "StructureID", Kind: KindBridgeClearance},
		{RequiredKey: "RestrictionType", Kind: KindCVRestriction},
		{RequiredKey: "AlertID", Kind: KindAlert},
		{RequiredKey: "CameraID", Kind: KindCamera},
		{RequiredKey: "MountainPassId", Kind: KindPassCondition},
		{RequiredKey: "FlowDataID", Kind: KindFlowData},
		{RequiredKey: "TravelTimeID", Kind: KindTravelTime},
		{RequiredKey: "StationID", Kind: KindWeatherInfo},
		{RequiredKey: "CurrentToll", Kind: KindTollRate},
	}
}

// Feed describes one traveler information REST endpoint.
type Feed struct {
	Name     string
	Kind     string
	GeomType string // "POINT", "MULTIPOINT" or empty
}

// Feeds lists the traveler information endpoints known to the CLI.
var Feeds = []Feed{
	{Name: "BorderCrossings", Kind: KindBorderCrossing, GeomType: "POINT"},
	{Name: "BridgeClearances", Kind: KindBridgeClearance, GeomType: "MULTIPOINT"},
	{Name: "CVRestrictions", Kind: KindCVRestriction, GeomType: "POINT"},
	{Name: "HighwayAlerts", Kind: KindAlert, GeomType: "MULTIPOINT"},
	{Name: "HighwayCameras", Kind: KindCamera, GeomType: "POINT"},
	{Name: "MountainPassConditions", Kind: KindPassCondition, GeomType: "POINT"},
	{Name: "TollRates", Kind: KindTollRate, GeomType: "MULTIPOINT"},
	{Name: "TrafficFlow", Kind: KindFlowData, GeomType: "POINT"},
	{Name: "TravelTimes", Kind: KindTravelTime, GeomType: "MULTIPOINT"},
	{Name: "WeatherInformation", Kind: KindWeatherInfo, GeomType: "POINT"},
	{Name: "WeatherStations", Kind: "", GeomType: "POINT"},
}

// FeedByName returns the feed with the given endpoint name.
func FeedByName(name string) (Feed, bool) {
	for _, f := range Feeds {
		if f.Name == name {
			return f, true
		}
	}
	return Feed{}, false
}
