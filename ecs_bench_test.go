package slotecs

import (
	"fmt"
	"testing"
)

var benchSizes = []int{1000, 10000, 100000}

func benchName(size int) string {
	return fmt.Sprintf("%dK", size/1000)
}

func newTiles(n int) []*tile {
	ts := make([]*tile, n)
	for i := range ts {
		ts[i] = &tile{}
	}
	return ts
}

// Admission Benchmarks
func BenchmarkUniverseAddEntity(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				u := NewUniverse[*tile](WithInitialCapacity(size))
				ts := newTiles(size)
				b.StartTimer()
				for _, e := range ts {
					_ = u.AddEntity(e)
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkUniverseAutoExpand(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				u := NewUniverse[*tile](WithInitialCapacity(16))
				ts := newTiles(size)
				b.StartTimer()
				for _, e := range ts {
					_ = u.AddEntity(e)
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkUniverseChurn(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			u := NewUniverse[*tile](WithInitialCapacity(size))
			ts := newTiles(size)
			for b.Loop() {
				for _, e := range ts {
					_ = u.AddEntity(e)
				}
				// out-of-order removal exercises the free queue
				for i := 0; i < len(ts); i += 2 {
					_ = u.RemoveEntity(ts[i])
				}
				for i := 1; i < len(ts); i += 2 {
					_ = u.RemoveEntity(ts[i])
				}
			}
			b.ReportAllocs()
		})
	}
}

// Storage Benchmarks
func BenchmarkStoragePut(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			u := NewUniverse[*tile](WithInitialCapacity(size))
			ts := newTiles(size)
			_ = u.AddEntities(ts...)
			positions := GetAccessor[Position](u)
			for b.Loop() {
				for _, e := range ts {
					_, _ = positions.Put(e, Position{X: 1, Y: 2})
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkStorageGet(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			u := NewUniverse[*tile](WithInitialCapacity(size))
			ts := newTiles(size)
			_ = u.AddEntities(ts...)
			positions := GetAccessor[Position](u)
			velocities := GetAccessor[Velocity](u)
			for _, e := range ts {
				_, _ = positions.Put(e, Position{})
				_, _ = velocities.Put(e, Velocity{VX: 1, VY: 1})
			}
			for b.Loop() {
				for _, e := range ts {
					p, _ := positions.Get(e)
					v, _ := velocities.Get(e)
					p.X += v.VX
					p.Y += v.VY
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkStorageLazyDefault(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(benchName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				u := NewUniverse[*tile](WithInitialCapacity(size))
				prefab, _ := u.MakePrefabFromDefaults(Health{Current: 10, Max: 10})
				ts := make([]*tile, size)
				for i := range ts {
					ts[i] = &tile{Base: FromPrefab(prefab)}
				}
				_ = u.AddEntities(ts...)
				healths := GetAccessor[Health](u)
				b.StartTimer()
				for _, e := range ts {
					_, _ = healths.Get(e)
				}
			}
			b.ReportAllocs()
		})
	}
}

// Index Pool Benchmarks
func BenchmarkIndexPoolBorrowFree(b *testing.B) {
	p := NewIndexPool(1024)
	slots := make([]int, 1024)
	for b.Loop() {
		for i := range slots {
			slots[i] = p.Borrow()
		}
		for i := 0; i < len(slots); i += 3 {
			_ = p.Free(slots[i])
		}
		for i := range slots {
			if i%3 != 0 {
				_ = p.Free(slots[i])
			}
		}
		for p.Available() > 0 {
			p.Borrow()
		}
		for s := p.MinUnused() - 1; s >= 0; s-- {
			_ = p.Free(s)
		}
	}
	b.ReportAllocs()
}
