package canonical

import "testing"

func TestResolve_YouTubeShapes(t *testing.T) {
	// All of these are the same video and must yield the same code.
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=abcdef",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
	}

	for _, url := range urls {
		code, ok := Resolve(url)
		if !ok {
			t.Errorf("Resolve(%q) not recognized", url)
			continue
		}
		if code != "yt:dQw4w9WgXcQ" {
			t.Errorf("Resolve(%q) = %q, want yt:dQw4w9WgXcQ", url, code)
		}
	}
}

func TestResolve_QueryVariantsCollapse(t *testing.T) {
	a, okA := Resolve("https://www.youtube.com/watch?v=jNQXAC9IVRw")
	b, okB := Resolve("https://www.youtube.com/watch?v=jNQXAC9IVRw&feature=share&t=10")
	if !okA || !okB {
		t.Fatal("expected both URL variants to resolve")
	}
	if a != b {
		t.Errorf("query variants produced different codes: %q vs %q", a, b)
	}
}

func TestResolve_Dailymotion(t *testing.T) {
	cases := map[string]string{
		"https://www.dailymotion.com/video/x8kz1vq":       "dm:x8kz1vq",
		"https://dai.ly/x8kz1vq":                          "dm:x8kz1vq",
		"https://www.dailymotion.com/video/x8kz1vq?start": "dm:x8kz1vq",
	}
	for url, want := range cases {
		code, ok := Resolve(url)
		if !ok {
			t.Errorf("Resolve(%q) not recognized", url)
			continue
		}
		if code != want {
			t.Errorf("Resolve(%q) = %q, want %q", url, code, want)
		}
	}
}

func TestResolve_PlatformsDoNotCollide(t *testing.T) {
	yt, _ := Resolve("https://youtu.be/x8kz1vqabcd")
	dm, _ := Resolve("https://dai.ly/x8kz1vq")
	if yt == dm {
		t.Errorf("codes from different platforms collided: %q", yt)
	}
}

func TestResolve_Unsupported(t *testing.T) {
	urls := []string{
		"https://vimeo.com/123456789",
		"https://example.com/watch?v=dQw4w9WgXcQ", // not a YouTube host
		"https://www.youtube.com/watch?v=tooshort",
		"not a url at all",
		"",
	}
	for _, url := range urls {
		if code, ok := Resolve(url); ok {
			t.Errorf("Resolve(%q) = %q, want no match", url, code)
		}
	}
}
