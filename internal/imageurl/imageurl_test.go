package imageurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farcloser/movup/internal/imageurl"
)

func TestResolve(t *testing.T) {
	resolver := imageurl.New([]string{"http://host", "http://fallback"})

	cases := []struct {
		path string
		want string
	}{
		{"frames/42.jpg", "http://host/frames/42.jpg"},
		{"/frames/42.jpg", "http://host/frames/42.jpg"},
		{"https://cdn/x.jpg", "https://cdn/x.jpg"},
		{"http://other/y.png", "http://other/y.png"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, resolver.Resolve(tc.path), tc.path)
	}
}

func TestResolveTrimsOriginSlash(t *testing.T) {
	resolver := imageurl.New([]string{"http://host:8000/"})

	assert.Equal(t, "http://host:8000/static/1.jpg", resolver.Resolve("/static/1.jpg"))
}

func TestResolveWithoutOrigins(t *testing.T) {
	resolver := imageurl.New(nil)

	assert.Empty(t, resolver.Primary())
	assert.Equal(t, "frames/1.jpg", resolver.Resolve("frames/1.jpg"))

	var nilResolver *imageurl.Resolver
	assert.Equal(t, "frames/1.jpg", nilResolver.Resolve("frames/1.jpg"))
}

func TestNewCopiesOrigins(t *testing.T) {
	origins := imageurl.DefaultOrigins()
	resolver := imageurl.New(origins)

	origins[0] = "http://mutated"

	assert.Equal(t, "http://127.0.0.1:8000", resolver.Primary())
}
