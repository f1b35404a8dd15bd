package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestDedupe_FirstSeenWins(t *testing.T) {
	in := []Format{
		{ID: "22", Resolution: "720p", Ext: "mp4", HasAudio: true, Filesize: ptr(100)},
		{ID: "23", Resolution: "720p", Ext: "mp4", HasAudio: true, Filesize: ptr(999)},
		{ID: "43", Resolution: "480p", Ext: "webm"},
	}

	out := Dedupe(in)
	require.Len(t, out, 2)
	require.Equal(t, "22", out[0].ID)
	require.Equal(t, ptr(100), out[0].Filesize)
	require.Equal(t, "43", out[1].ID)
}

func TestDedupe_SameResolutionDifferentContainerKept(t *testing.T) {
	in := []Format{
		{ID: "22", Resolution: "720p", Ext: "mp4"},
		{ID: "45", Resolution: "720p", Ext: "webm"},
	}

	require.Len(t, Dedupe(in), 2)
}

func TestSortByHeight_UnknownSortsLast(t *testing.T) {
	in := []Format{
		{ID: "a", Height: 720},
		{ID: "b", Height: 0},
		{ID: "c", Height: 1080},
		{ID: "d", Height: 480},
	}

	out := SortByHeight(in)
	heights := []int{}
	for _, f := range out {
		heights = append(heights, f.Height)
	}
	require.Equal(t, []int{1080, 720, 480, 0}, heights)

	// Input order is untouched.
	require.Equal(t, "a", in[0].ID)
}

func TestSortByHeight_StableOnTies(t *testing.T) {
	in := []Format{
		{ID: "first", Height: 720},
		{ID: "second", Height: 720},
		{ID: "third", Height: 1080},
	}

	out := SortByHeight(in)
	require.Equal(t, []string{"third", "first", "second"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestAutoSelect_PrefersConfiguredResolution(t *testing.T) {
	r := &Resolver{PreferredResolution: "720p"}
	formats := []Format{
		{ID: "hi", Resolution: "1080p"},
		{ID: "mid", Resolution: "720p"},
		{ID: "lo", Resolution: "480p"},
	}

	f, ok := r.AutoSelect(formats)
	require.True(t, ok)
	require.Equal(t, "mid", f.ID)
}

func TestAutoSelect_FallsBackToFirst(t *testing.T) {
	r := &Resolver{PreferredResolution: "720p"}
	formats := []Format{
		{ID: "hi", Resolution: "1080p"},
		{ID: "lo", Resolution: "480p"},
	}

	f, ok := r.AutoSelect(formats)
	require.True(t, ok)
	require.Equal(t, "hi", f.ID)
}

func TestAutoSelect_EmptyList(t *testing.T) {
	r := &Resolver{PreferredResolution: "720p"}

	_, ok := r.AutoSelect(nil)
	require.False(t, ok)
}

func TestFormatSpec(t *testing.T) {
	require.Equal(t, "22+bestaudio[ext=m4a]/best", FormatSpec(Format{ID: "22"}))
}
