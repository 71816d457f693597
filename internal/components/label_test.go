package components

import (
	"testing"

	"github.com/mvgraph/mapvec/internal/raster"
)

func setBlack(b *raster.Bitmap, pts ...[2]int) {
	for _, p := range pts {
		b.SetBlack(p[0], p[1], true)
	}
}

func TestLabelSingleComponent(t *testing.T) {
	b := raster.NewBitmap(5, 5)
	setBlack(b, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})

	labels, comps, err := Label(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	if comps[0].Area != 4 {
		t.Errorf("expected area 4, got %d", comps[0].Area)
	}
	if comps[0].MBRMin != (raster.Pixel{Row: 1, Col: 1}) || comps[0].MBRMax != (raster.Pixel{Row: 2, Col: 2}) {
		t.Errorf("unexpected MBR: %+v %+v", comps[0].MBRMin, comps[0].MBRMax)
	}
	for _, p := range [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
		if labels[p[0]*5+p[1]] != comps[0].Label {
			t.Errorf("pixel %v not labelled with canonical label", p)
		}
	}
}

func TestLabelTwoComponentsMergedByUnion(t *testing.T) {
	// Two diagonal runs that only touch where (2,2) and (1,3) meet along
	// the north-east predecessor offset, forcing pass 1 to assign two
	// provisional labels that get unioned once that pair is reached.
	b := raster.NewBitmap(5, 5)
	setBlack(b,
		[2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, // left arm into apex
		[2]int{0, 4}, [2]int{1, 3}, // right arm into apex
	)
	_, comps, err := Label(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected the apex to merge both arms into 1 component, got %d", len(comps))
	}
	if comps[0].Area != 5 {
		t.Errorf("expected area 5, got %d", comps[0].Area)
	}
}

func TestLabelDisjointComponents(t *testing.T) {
	b := raster.NewBitmap(5, 5)
	setBlack(b, [2]int{0, 0}, [2]int{4, 4})
	_, comps, err := Label(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 disjoint components, got %d", len(comps))
	}
}

func TestLabelSeedIsAlwaysBlack(t *testing.T) {
	// An L-shaped component whose MBR's min corner (1,1) is itself white:
	// a seed that just copies the MBR corner would point FloodErase at a
	// background pixel and it would never erase anything.
	b := raster.NewBitmap(5, 5)
	setBlack(b, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2}, [2]int{3, 1})

	_, comps, err := Label(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	if !b.IsBlack(comps[0].Seed.Row, comps[0].Seed.Col) {
		t.Fatalf("seed pixel %+v is not black", comps[0].Seed)
	}
}

func TestAreaFilterRatio(t *testing.T) {
	cs := []ConnectedComponent{{Area: 100}, {Area: 10}, {Area: 1}}
	out := AreaFilter(cs, 20)
	// threshold = 100/20 = 5, so areas 100 and 10 survive and area 1 is dropped
	if len(out) != 2 {
		t.Fatalf("expected the components of area 100 and 10 to survive a ratio of 20, got %d", len(out))
	}
	if AreaFilter(cs, 0)[2].Area != 1 {
		t.Fatalf("ratio<=0 should disable filtering")
	}
}
