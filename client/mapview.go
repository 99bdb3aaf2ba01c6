package client

// Default map framing over the continental US, used when a meetup carries no
// location at all.
const (
	DefaultMapLat  = 39.5
	DefaultMapLng  = -98.35
	DefaultMapZoom = 4
	CloseMapZoom   = 14
)

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// MapView is the framing a map widget should apply: where to center and how
// far to zoom.
type MapView struct {
	Center LatLng
	Zoom   int
}

// Marker is a pin on the map.
type Marker struct {
	Position LatLng
	Label    string
}

// MapState is everything a map widget renders for one meetup: the view to
// apply (nil means leave the current framing alone), the meetup's marker, and
// independently the viewer's own position marker.
type MapState struct {
	View       *MapView
	Marker     *Marker
	UserMarker *Marker
}

// DeriveMapView computes the framing for a meetup's map.
//
// A resolved geocode centers tightly on the result. A meetup with no location
// falls back to the country-wide default. A meetup that has a location the
// geocoder could not resolve yields no view at all, so the widget keeps
// whatever framing it already had rather than jumping somewhere wrong.
func DeriveMapView(hasLocation bool, geocoded *GeoResult) *MapView {
	if geocoded != nil {
		return &MapView{Center: LatLng{Lat: geocoded.Lat, Lng: geocoded.Lng}, Zoom: CloseMapZoom}
	}
	if !hasLocation {
		return &MapView{Center: LatLng{Lat: DefaultMapLat, Lng: DefaultMapLng}, Zoom: DefaultMapZoom}
	}
	return nil
}

// MapModel tracks the map state for the meetup detail view. The meetup marker
// and the viewer's own marker move independently.
type MapModel struct {
	toaster *Toaster

	State *Signal[MapState]
}

// NewMapModel returns a model with no markers and no view.
func NewMapModel(toaster *Toaster) *MapModel {
	return &MapModel{
		toaster: toaster,
		State:   NewSignal(MapState{}),
	}
}

// ShowMeetup frames the map for a meetup, given whether it carried a location
// and what the geocoder made of it.
func (m *MapModel) ShowMeetup(hasLocation bool, geocoded *GeoResult) {
	m.State.Update(func(s MapState) MapState {
		s.View = DeriveMapView(hasLocation, geocoded)
		if geocoded != nil {
			s.Marker = &Marker{
				Position: LatLng{Lat: geocoded.Lat, Lng: geocoded.Lng},
				Label:    geocoded.DisplayName,
			}
		} else {
			s.Marker = nil
		}
		return s
	})
}

// SetUserPosition drops or moves the viewer's own marker without touching the
// meetup marker or the framing.
func (m *MapModel) SetUserPosition(pos LatLng) {
	m.State.Update(func(s MapState) MapState {
		s.UserMarker = &Marker{Position: pos, Label: "You are here"}
		return s
	})
}

// UserPositionFailed reports that the platform refused or failed the
// geolocation request.
func (m *MapModel) UserPositionFailed() {
	m.toaster.Error("Unable to determine your location.")
}

// UserPositionUnsupported reports that the platform offers no geolocation at
// all.
func (m *MapModel) UserPositionUnsupported() {
	m.toaster.Error("Geolocation is not supported on this device.")
}
