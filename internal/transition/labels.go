package transition

// Labels derives the label vectors for an output made of head untouched frames,
// span synthesized frames and tail untouched frames.
//
// The one-hot vector marks the floor midpoint of the span measured from the head,
// (2*head + span - 1) / 2. The multi-hot vector covers the last head frame and the whole
// span; for a hard cut (span 0) both vectors mark the last frame of the head.
func Labels(head, tail, span int) (oneHot, multiHot []uint8) {
	total := head + span + tail
	oneHot = make([]uint8, total)
	multiHot = make([]uint8, total)
	if total == 0 {
		return oneHot, multiHot
	}

	mid := (2*head + span - 1) / 2
	if mid < 0 {
		mid = 0
	}
	oneHot[mid] = 1

	start := head - 1
	if start < 0 {
		start = 0
	}
	end := head + span - 1
	if end < start {
		end = start
	}
	for i := start; i <= end; i++ {
		multiHot[i] = 1
	}
	return oneHot, multiHot
}
