package utils

import (
    "regexp"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
    cases := []struct {
        title string
        base  string
    }{
        {"Prime Billboard - MG Road", "prime-billboard-mg-road"},
        {"  Metro  Pillar #42  ", "metro-pillar-42"},
        {"LULU MALL Facade", "lulu-mall-facade"},
    }
    for _, tc := range cases {
        got := Slugify(tc.title)
        require.True(t, slugRe.MatchString(got), "slug %q", got)
        assert.True(t, strings.HasPrefix(got, tc.base+"-"), "slug %q should start with %q", got, tc.base)
        // 8-char suffix after the base
        assert.Len(t, got, len(tc.base)+1+8)
    }
}

func TestSlugifyEmptyTitle(t *testing.T) {
    got := Slugify("!!! ???")
    require.True(t, slugRe.MatchString(got))
    assert.Len(t, got, 8)
}

func TestSlugifyUnique(t *testing.T) {
    a := Slugify("Same Title")
    b := Slugify("Same Title")
    assert.NotEqual(t, a, b)
}

func TestSlugifyCapsLength(t *testing.T) {
    long := strings.Repeat("billboard ", 30)
    got := Slugify(long)
    // 90-char base cap plus hyphen and suffix
    assert.LessOrEqual(t, len(got), 90+1+8)
    assert.True(t, slugRe.MatchString(got))
}
