package icons

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"", Unknown},
		{"Clear", Sun},
		{"Sunny with rain", Sun},
		{"Partially cloudy", Cloud},
		{"Overcast", Cloud},
		{"Cloudy with rain", Cloud},
		{"Rain", Rain},
		{"Light DRIZZLE", Rain},
		{"Scattered showers", Rain},
		{"Rain, Snow", Rain},
		{"light snow flurries", Snow},
		{"Flurry", Snow},
		{"Sleet", Snow},
		{"Fog", Unknown},
		{"Thunderstorm", Unknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStaticResolver(t *testing.T) {
	var r Resolver = Static{}
	for _, c := range Categories {
		if got := r.Resolve(context.Background(), c); got != "icons/"+string(c)+".svg" {
			t.Fatalf("unexpected static path %q", got)
		}
	}
	if got := r.Resolve(context.Background(), Category("../secret")); got != "icons/unknown.svg" {
		t.Fatalf("invalid category must resolve as unknown, got %q", got)
	}
}

func TestBundleResolvesEmbeddedAssets(t *testing.T) {
	b := NewBundle(Assets(), "/assets/icons/")
	for _, c := range Categories {
		got := b.Resolve(context.Background(), c)
		if !strings.HasPrefix(got, "/assets/icons/"+string(c)+".svg?v=") {
			t.Fatalf("unexpected bundle ref for %s: %q", c, got)
		}
		if again := b.Resolve(context.Background(), c); again != got {
			t.Fatalf("bundle ref not stable: %q vs %q", got, again)
		}
	}
}

func TestBundleFallsBackWhenAssetMissing(t *testing.T) {
	b := NewBundle(fstest.MapFS{
		"sun.svg": &fstest.MapFile{Data: []byte("<svg/>")},
	}, "/assets/icons")

	if got := b.Resolve(context.Background(), Rain); got != "icons/rain.svg" {
		t.Fatalf("expected static fallback, got %q", got)
	}
	if got := b.Resolve(context.Background(), Sun); !strings.HasPrefix(got, "/assets/icons/sun.svg?v=") {
		t.Fatalf("expected bundle ref, got %q", got)
	}
}

type failingFS struct{}

func (failingFS) Open(string) (fs.File, error) { return nil, errors.New("loader unavailable") }

func TestBundleFallsBackWhenLoaderFails(t *testing.T) {
	b := NewBundle(failingFS{}, "/assets/icons")
	for _, c := range Categories {
		if got := b.Resolve(context.Background(), c); got != StaticPath(c) {
			t.Fatalf("expected %q, got %q", StaticPath(c), got)
		}
	}
	if got := NewBundle(nil, "/x").Resolve(context.Background(), Snow); got != "icons/snow.svg" {
		t.Fatalf("nil fs must fall back, got %q", got)
	}
}

func TestBundleFallsBackOnDoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := NewBundle(Assets(), "/assets/icons").Resolve(ctx, Cloud); got != "icons/cloud.svg" {
		t.Fatalf("expected static fallback, got %q", got)
	}
}

func TestNewResolver(t *testing.T) {
	if _, ok := NewResolver(ModeBundle, Assets(), "/assets/icons").(*Bundle); !ok {
		t.Fatalf("expected bundle resolver")
	}
	if _, ok := NewResolver(ModeStatic, Assets(), "/assets/icons").(Static); !ok {
		t.Fatalf("expected static resolver")
	}
	if _, ok := NewResolver(ModeBundle, nil, "/assets/icons").(Static); !ok {
		t.Fatalf("bundle without assets must degrade to static")
	}
}
