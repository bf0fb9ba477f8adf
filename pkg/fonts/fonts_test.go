package fonts

import "testing"

func TestFaces(t *testing.T) {
	for name, load := range map[string]func(float64) (any, error){
		"regular": func(s float64) (any, error) { return Regular(s) },
		"bold":    func(s float64) (any, error) { return Bold(s) },
	} {
		t.Run(name, func(t *testing.T) {
			face, err := load(12)
			if err != nil {
				t.Fatalf("load face: %v", err)
			}
			if face == nil {
				t.Fatal("face is nil")
			}
		})
	}
}

func TestRegularMetrics(t *testing.T) {
	small, err := Regular(10)
	if err != nil {
		t.Fatal(err)
	}
	large, err := Regular(20)
	if err != nil {
		t.Fatal(err)
	}
	if small.Metrics().Height >= large.Metrics().Height {
		t.Errorf("size 10 height %v should be below size 20 height %v",
			small.Metrics().Height, large.Metrics().Height)
	}
}

func TestFacesAreCached(t *testing.T) {
	a, err := Bold(17)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bold(17)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same weight and size should return the cached face")
	}
	r, err := Regular(17)
	if err != nil {
		t.Fatal(err)
	}
	if r == a {
		t.Error("regular and bold faces should be distinct")
	}
	if Cached() < 2 {
		t.Errorf("Cached() = %d, want at least 2", Cached())
	}
}

func TestInvalidSize(t *testing.T) {
	for _, size := range []float64{0, -3} {
		if _, err := Regular(size); err == nil {
			t.Errorf("Regular(%v) should fail", size)
		}
	}
}
