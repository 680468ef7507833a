package engine

// similarityRatio measures how alike two strings are as
// 2*matches / (len(a)+len(b)), where matches is the total length of
// matching blocks found by recursively taking the longest common
// substring (Ratcliff/Obershelp). 1 means identical, 0 means nothing in
// common; two empty strings count as identical.
func similarityRatio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchTotal(a, b)) / float64(total)
}

func matchTotal(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size + matchTotal(a[:ai], b[:bi]) + matchTotal(a[ai+size:], b[bi+size:])
}

func longestCommonSubstring(a, b string) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}
