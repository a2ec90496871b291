package garden

// Location is an optional geolocation attached to a submission. Alt is a
// pointer so an unset altitude is omitted from the payload entirely rather
// than serialized as zero.
type Location struct {
	Lat  float64  `json:"lat"`
	Long float64  `json:"long"`
	Alt  *float64 `json:"alt,omitempty"`
}

// EnvironmentData maps sensor field names to readings. Recognized fields must
// carry numeric values; unrecognized fields pass through unvalidated so newer
// firmware can report fields this client does not know about yet.
type EnvironmentData map[string]any

// Recognized environment sensor fields.
const (
	FieldPM1p0              = "pm1p0"
	FieldPM2p5              = "pm2p5"
	FieldPM4p0              = "pm4p0"
	FieldPM10p0             = "pm10p0"
	FieldAmbientTemperature = "ambient_temperature"
	FieldAmbientHumidity    = "ambient_humidity"
	FieldVOCIndex           = "voc_index"
	FieldNOxIndex           = "nox_index"
)

// EnvironmentFields lists the recognized sensor field vocabulary.
var EnvironmentFields = []string{
	FieldPM1p0,
	FieldPM2p5,
	FieldPM4p0,
	FieldPM10p0,
	FieldAmbientTemperature,
	FieldAmbientHumidity,
	FieldVOCIndex,
	FieldNOxIndex,
}

func recognizedEnvironmentField(name string) bool {
	for _, field := range EnvironmentFields {
		if name == field {
			return true
		}
	}
	return false
}

// Page is the {items, next_token} envelope returned by list endpoints.
type Page[T any] struct {
	Items     []T    `json:"items"`
	NextToken string `json:"next_token,omitempty"`
}

// WriteResponse is the acknowledgement returned by write endpoints.
type WriteResponse struct {
	StatusCode int            `json:"statusCode,omitempty"`
	Message    string         `json:"message,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// Classification is a stored classification record as echoed by the backend.
type Classification struct {
	DeviceID           string          `json:"device_id"`
	ModelID            string          `json:"model_id"`
	Timestamp          string          `json:"timestamp"`
	Family             string          `json:"family"`
	Genus              string          `json:"genus"`
	Species            string          `json:"species"`
	FamilyConfidence   float64         `json:"family_confidence"`
	GenusConfidence    float64         `json:"genus_confidence"`
	SpeciesConfidence  float64         `json:"species_confidence"`
	ImageKey           string          `json:"image_key,omitempty"`
	BoundingBox        []float64       `json:"bounding_box,omitempty"`
	TrackID            string          `json:"track_id,omitempty"`
	Metadata           map[string]any  `json:"metadata,omitempty"`
	ClassificationData map[string]any  `json:"classification_data,omitempty"`
	Location           *Location       `json:"location,omitempty"`
	Environment        EnvironmentData `json:"environment,omitempty"`
}

// Detection is a stored detection record.
type Detection struct {
	DeviceID    string    `json:"device_id"`
	ModelID     string    `json:"model_id"`
	Timestamp   string    `json:"timestamp"`
	ImageKey    string    `json:"image_key,omitempty"`
	BoundingBox []float64 `json:"bounding_box,omitempty"`
}

// Model identifies a classification model registered with the backend.
type Model struct {
	ModelID     string `json:"model_id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// Device is a registered hardware unit.
type Device struct {
	DeviceID string `json:"device_id"`
	Created  string `json:"created,omitempty"`
}

// EnvironmentReading is a stored standalone environment submission.
type EnvironmentReading struct {
	DeviceID    string          `json:"device_id"`
	Timestamp   string          `json:"timestamp"`
	Environment EnvironmentData `json:"environment"`
	Location    *Location       `json:"location,omitempty"`
}

// Video is a stored video record.
type Video struct {
	DeviceID    string         `json:"device_id"`
	Timestamp   string         `json:"timestamp"`
	VideoKey    string         `json:"video_key,omitempty"`
	ContentType string         `json:"content_type,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
