// Package canonical extracts platform content identifiers from submitted
// URLs so the same video is recognized under different links.
package canonical

import "regexp"

// Codes are namespaced per platform so ids from different platforms
// can never collide in the uniqueness constraint.
const (
	prefixYouTube     = "yt:"
	prefixDailymotion = "dm:"
)

// YouTube video ids are exactly 11 characters. The shapes below cover
// watch pages, short links, Shorts, embeds and live URLs, with or without
// extra query parameters.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|//|\.)youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:^|//|\.)youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:^|//|\.)youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:^|//|\.)youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:^|//|\.)youtube\.com/live/([A-Za-z0-9_-]{11})`),
}

// Dailymotion ids are x-prefixed base36 strings.
var dailymotionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|//|\.)dailymotion\.com/video/(x[a-z0-9]{5,7})`),
	regexp.MustCompile(`(?:^|//|\.)dai\.ly/(x[a-z0-9]{5,7})`),
}

// Resolve extracts the canonical content code from a URL. ok is false when
// the URL belongs to no supported platform, in which case duplicate
// detection falls back to exact URL equality.
func Resolve(url string) (code string, ok bool) {
	for _, re := range youtubePatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return prefixYouTube + m[1], true
		}
	}
	for _, re := range dailymotionPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return prefixDailymotion + m[1], true
		}
	}
	return "", false
}
