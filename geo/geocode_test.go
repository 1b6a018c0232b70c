package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Lisbon, Portugal" {
			w.Write([]byte("[]"))
			return
		}
		w.Write([]byte(`[{"lat":"38.7223","lon":"-9.1393"}]`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL)

	coords, err := g.Geocode(context.Background(), "Lisbon", "Portugal")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if coords == nil || coords.Latitude != 38.7223 || coords.Longitude != -9.1393 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}

	miss, err := g.Geocode(context.Background(), "Nowhere", "Atlantis")
	if err != nil {
		t.Fatalf("geocode miss: %v", err)
	}
	if miss != nil {
		t.Fatalf("expected nil for no match, got %+v", miss)
	}
}
