package dlist_test

import (
	"container/list"
	"testing"

	"github.com/dommiloo/dlist/dlist"
)

func BenchmarkPushPop(b *testing.B) {
	b.Run("dlist", func(b *testing.B) {
		var l dlist.List

		b.ReportAllocs()
		b.ResetTimer()

		for range b.N {
			l.PushBack(1)
			_, _ = l.PopFront()
		}
	})

	b.Run("std list", func(b *testing.B) {
		l := list.New()

		b.ReportAllocs()
		b.ResetTimer()

		for range b.N {
			e := l.PushBack(1)
			l.Remove(e)
		}
	})
}

func BenchmarkTraversal(b *testing.B) {
	var l dlist.List

	for i := range 1024 {
		l.PushBack(i)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var sum int

	for range b.N {
		for v := range l.All() {
			sum += v
		}
	}

	_ = sum
}
