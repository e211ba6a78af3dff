package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestExpandDateRange(t *testing.T) {
    cases := []struct {
        name  string
        start string
        end   string
        want  []string
        err   error
    }{
        {
            name:  "single day",
            start: "2026-03-10", end: "2026-03-10",
            want: []string{"2026-03-10"},
        },
        {
            name:  "inclusive range",
            start: "2026-03-10", end: "2026-03-13",
            want: []string{"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13"},
        },
        {
            name:  "crosses month boundary",
            start: "2026-01-30", end: "2026-02-02",
            want: []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"},
        },
        {
            name:  "leap day",
            start: "2028-02-28", end: "2028-03-01",
            want: []string{"2028-02-28", "2028-02-29", "2028-03-01"},
        },
        {
            name:  "end before start",
            start: "2026-03-13", end: "2026-03-10",
            err: ErrBadRange,
        },
        {
            name:  "malformed start",
            start: "10-03-2026", end: "2026-03-13",
            err: ErrBadDate,
        },
        {
            name:  "malformed end",
            start: "2026-03-10", end: "not-a-date",
            err: ErrBadDate,
        },
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got, err := ExpandDateRange(tc.start, tc.end)
            if tc.err != nil {
                require.ErrorIs(t, err, tc.err)
                return
            }
            require.NoError(t, err)
            assert.Equal(t, tc.want, got)
        })
    }
}

func TestRangeDays(t *testing.T) {
    cases := []struct {
        start string
        end   string
        want  int
    }{
        {"2026-03-10", "2026-03-10", 1},
        {"2026-03-10", "2026-03-16", 7},
        {"2025-12-25", "2026-01-05", 12},
    }
    for _, tc := range cases {
        got, err := RangeDays(tc.start, tc.end)
        require.NoError(t, err)
        assert.Equal(t, tc.want, got, "%s..%s", tc.start, tc.end)
    }

    _, err := RangeDays("2026-03-16", "2026-03-10")
    assert.ErrorIs(t, err, ErrBadRange)
}

func TestParseDayRejectsGarbage(t *testing.T) {
    for _, s := range []string{"", "2026-3-1", "2026/03/01", "2026-03-01T00:00:00Z"} {
        _, err := ParseDay(s)
        assert.ErrorIs(t, err, ErrBadDate, "input %q", s)
    }
}
