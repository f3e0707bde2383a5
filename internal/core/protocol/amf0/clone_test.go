// If you are AI: This file tests deep copying of value trees.
package amf0

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCloneEqualAndIndependent(t *testing.T) {
	orig := sample().(*AssociativeArray)
	cp := Clone(orig).(*AssociativeArray)

	if diff := cmp.Diff(snapshot(orig), snapshot(cp)); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}
	before := snapshot(orig)

	cp.Set("duration", NewNumber(99))
	video, _ := cp.Get("video")
	video.(*Object).Add("profile", String("high"))
	frames, _ := cp.Get("keyframes")
	frames.(*Array).Pop()
	cp.Delete("stereo")

	if diff := cmp.Diff(before, snapshot(orig)); diff != "" {
		t.Fatalf("mutating the clone changed the original:\n%s", diff)
	}

	origVideo, _ := orig.Get("video")
	require.NotSame(t, origVideo, video)
}

func TestCloneScalarsAndNil(t *testing.T) {
	require.Nil(t, Clone(nil))
	require.Equal(t, Null{}, Clone(Null{}))
	require.Equal(t, Undefined{}, Clone(Undefined{}))
	require.Equal(t, String("x"), Clone(String("x")))
	require.Equal(t, NumberFromBits(7), Clone(NumberFromBits(7)))
}

func TestCloneDeepNesting(t *testing.T) {
	const depth = 100000
	root := NewArray()
	cur := root
	for i := 0; i < depth; i++ {
		next := NewArray()
		cur.Push(next)
		cur = next
	}

	cp := Clone(root).(*Array)
	n := 0
	for a := cp; a.Len() > 0; n++ {
		v, _ := a.At(0)
		a = v.(*Array)
	}
	require.Equal(t, depth, n)
}
