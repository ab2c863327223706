package index

import "testing"

func TestGridF64InsertQuery(t *testing.T) {
	idx := NewUniformGridF64[uint32](10, 10, 0, 0)
	idx.Insert(aabbF64(1, 1, 5, 5), 1)
	idx.Insert(aabbF64(12, 1, 18, 5), 2)
	idx.Commit()

	if hits := idx.QueryPoint(3, 3); len(hits) != 1 || hits[0].Payload != 1 {
		t.Fatalf("expected payload 1, got %v", hits)
	}
	if hits := idx.QueryPoint(15, 3); len(hits) != 1 || hits[0].Payload != 2 {
		t.Fatalf("expected payload 2, got %v", hits)
	}
	if hits := idx.QueryRect(aabbF64(0, 0, 20, 10)); len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
}

func TestGridI64NegativeCoordinates(t *testing.T) {
	idx := NewUniformGridI64[uint32](10, 10, 0, 0)
	k := idx.Insert(aabbI64(-15, -15, -12, -12), 1)
	idx.Commit()

	if hits := idx.QueryPoint(-13, -13); len(hits) != 1 {
		t.Fatalf("expected hit at negative coordinate, got %v", hits)
	}

	idx.Update(k, aabbI64(5, 5, 8, 8))
	idx.Commit()
	if hits := idx.QueryPoint(-13, -13); len(hits) != 0 {
		t.Fatalf("expected no hit at old negative location, got %v", hits)
	}
	if hits := idx.QueryPoint(6, 6); len(hits) != 1 {
		t.Fatalf("expected hit at new location, got %v", hits)
	}
}

func TestGridF32StraddlingCellsDeduped(t *testing.T) {
	idx := NewUniformGridF32[uint32](10, 10, 0, 0)
	idx.Insert(AABB[float32]{MinX: 8, MinY: 8, MaxX: 12, MaxY: 12}, 1)
	idx.Commit()

	hits := idx.QueryRect(AABB[float32]{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20})
	if len(hits) != 1 {
		t.Fatalf("expected exactly 1 deduped hit across straddled cells, got %d", len(hits))
	}
}

func TestGridI64PanicsOnNonPositiveCell(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive cell size")
		}
	}()
	NewGridI64[uint32](0, 10, 0, 0)
}
