package engine

import "testing"

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
		tol  float64
	}{
		{"", "", 1, 0},
		{"abc", "abc", 1, 0},
		{"abc", "xyz", 0, 0},
		{"abc", "", 0, 0},
		{"abcd", "bcde", 0.75, 1e-9},       // "bcd" shared
		{"apple watch", "apple witch", 0.9, 0.01},
	}

	for _, tt := range tests {
		got := similarityRatio(tt.a, tt.b)
		if diff := got - tt.want; diff > tt.tol || diff < -tt.tol {
			t.Errorf("similarityRatio(%q, %q) = %.4f; want %.4f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarityRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"sony wh-1000xm4", "sony wh1000xm4 headphones"},
		{"instant pot duo", "crock pot express"},
	}
	for _, pair := range pairs {
		ab := similarityRatio(pair[0], pair[1])
		ba := similarityRatio(pair[1], pair[0])
		if ab != ba {
			t.Errorf("ratio not symmetric for %q/%q: %.4f vs %.4f", pair[0], pair[1], ab, ba)
		}
	}
}

func TestLongestCommonSubstring(t *testing.T) {
	ai, bi, size := longestCommonSubstring("wireless headphones", "headphones wireless")
	if size != 10 { // "headphones" is the longest run both sides share
		t.Errorf("size = %d; want 10", size)
	}
	if ai < 0 || bi < 0 {
		t.Errorf("negative offsets %d/%d", ai, bi)
	}
}
