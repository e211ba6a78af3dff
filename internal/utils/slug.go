package utils

import (
    "strings"
    "unicode"

    "github.com/google/uuid"
)

// Slugify converts a listing title into a URL slug: lower-cased, runs of
// non-alphanumeric characters collapsed into single hyphens, truncated to
// 90 characters.  A short uuid suffix is appended so two listings with the
// same title never collide.
func Slugify(title string) string {
    var b strings.Builder
    lastHyphen := true // suppress a leading hyphen
    for _, r := range strings.ToLower(strings.TrimSpace(title)) {
        switch {
        case unicode.IsLetter(r) || unicode.IsDigit(r):
            b.WriteRune(r)
            lastHyphen = false
        default:
            if !lastHyphen {
                b.WriteByte('-')
                lastHyphen = true
            }
        }
    }
    s := strings.TrimSuffix(b.String(), "-")
    if len(s) > 90 {
        s = strings.TrimSuffix(s[:90], "-")
    }
    suffix := uuid.NewString()[:8]
    if s == "" {
        return suffix
    }
    return s + "-" + suffix
}
